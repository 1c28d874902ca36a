package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// idParam reads a positive numeric path parameter. On failure the 400 has
// already been written.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.WriteError(c, httperr.ErrBusiness("invalid_id"))
		return 0, false
	}
	return uint(id), true
}

func bindError(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_input", err.Error())
}
