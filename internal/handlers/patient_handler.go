package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

// PatientHandler serves the doctor directory and availability lookups a
// patient needs before booking. Only approved doctors are visible.
type PatientHandler struct {
	listDoctorsUC     *ucSchedule.ListDoctors
	getAvailabilityUC *ucAppointment.GetAvailability
	listSlotsUC       *ucAppointment.ListSlots
}

func NewPatientHandler(
	listDoctorsUC *ucSchedule.ListDoctors,
	getAvailabilityUC *ucAppointment.GetAvailability,
	listSlotsUC *ucAppointment.ListSlots,
) *PatientHandler {
	return &PatientHandler{
		listDoctorsUC:     listDoctorsUC,
		getAvailabilityUC: getAvailabilityUC,
		listSlotsUC:       listSlotsUC,
	}
}

// ======================================================
// DOCTORS
// ======================================================

func (h *PatientHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.listDoctorsUC.Execute(c.Request.Context(), true)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, dto.FromDoctors(doctors))
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PatientHandler) Availability(c *gin.Context) {
	doctorID, ok := idParam(c, "id")
	if !ok {
		return
	}

	w, err := h.getAvailabilityUC.Execute(c.Request.Context(), doctorID, c.Query("date"), true)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AvailabilityDTO{
		Date:         timezone.FormatDate(w.Date),
		Available:    w.Available,
		Source:       string(w.Source),
		WorkingHours: w.Hours,
	})
}

func (h *PatientHandler) TimeSlots(c *gin.Context) {
	doctorID, ok := idParam(c, "id")
	if !ok {
		return
	}

	slots, err := h.listSlotsUC.Execute(c.Request.Context(), ucAppointment.ListSlotsInput{
		DoctorID:     doctorID,
		Date:         c.Query("date"),
		All:          c.Query("all") == "true",
		BookableOnly: true,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	// bare array: clients render it directly as the slot picker
	httpresp.OK(c, slots)
}
