package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
)

type MeHandler struct {
	repo domain.Repository
}

func NewMeHandler(repo domain.Repository) *MeHandler {
	return &MeHandler{repo: repo}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.Actor(c)

	user, err := h.repo.FindUser(c.Request.Context(), actor.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "user_not_found", "The authenticated user no longer exists.")
		return
	}
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	out := gin.H{
		"_id":           user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"role":          user.Role,
		"bio":           user.Bio,
		"contactNumber": user.ContactNumber,
	}
	if user.Doctor != nil {
		out["specialization"] = user.Doctor.Specialization
		out["isApproved"] = user.Doctor.IsApproved
	}

	c.JSON(http.StatusOK, gin.H{"user": out})
}
