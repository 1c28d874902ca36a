package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC   *ucAppointment.BookAppointment
	listUC   *ucAppointment.ListAppointments
	getUC    *ucAppointment.GetAppointment
	updateUC *ucAppointment.UpdateAppointmentStatus
	deleteUC *ucAppointment.DeleteAppointment
}

func NewAppointmentHandler(
	bookUC *ucAppointment.BookAppointment,
	listUC *ucAppointment.ListAppointments,
	getUC *ucAppointment.GetAppointment,
	updateUC *ucAppointment.UpdateAppointmentStatus,
	deleteUC *ucAppointment.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:   bookUC,
		listUC:   listUC,
		getUC:    getUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// BOOK (patient)
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	var req dto.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		PatientID: middleware.Actor(c).UserID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromAppointment(ap))
}

// ======================================================
// LIST / GET
// ======================================================

// List is scoped by the caller's role: patients and doctors only ever see
// their own appointments, admins may filter by doctorId and patientId.
func (h *AppointmentHandler) List(c *gin.Context) {
	var q struct {
		Date      string `form:"date"`
		Status    string `form:"status"`
		DoctorID  uint   `form:"doctorId"`
		PatientID uint   `form:"patientId"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	apps, err := h.listUC.Execute(c.Request.Context(), middleware.Actor(c), ucAppointment.ListAppointmentsInput{
		Date:      q.Date,
		Status:    q.Status,
		DoctorID:  q.DoctorID,
		PatientID: q.PatientID,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, apps)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, string(domain.StatusCancelled))
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.changeStatus(c, req.Status)
}

func (h *AppointmentHandler) changeStatus(c *gin.Context, status string) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), middleware.Actor(c), id, status)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// DELETE (admin)
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
