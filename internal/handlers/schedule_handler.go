package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/schedule"
)

// ScheduleHandler serves a doctor's own weekly schedule, date overrides and
// slot grid, plus the admin schedule initialization.
type ScheduleHandler struct {
	getWeeklyUC      *ucSchedule.GetWeeklySchedule
	updateWeeklyUC   *ucSchedule.UpdateWeeklyDay
	listOverridesUC  *ucSchedule.ListDateOverrides
	setOverrideUC    *ucSchedule.SetDateOverride
	deleteOverrideUC *ucSchedule.DeleteDateOverride
	initializeUC     *ucSchedule.InitializeSchedule
	listSlotsUC      *ucAppointment.ListSlots
}

func NewScheduleHandler(
	getWeeklyUC *ucSchedule.GetWeeklySchedule,
	updateWeeklyUC *ucSchedule.UpdateWeeklyDay,
	listOverridesUC *ucSchedule.ListDateOverrides,
	setOverrideUC *ucSchedule.SetDateOverride,
	deleteOverrideUC *ucSchedule.DeleteDateOverride,
	initializeUC *ucSchedule.InitializeSchedule,
	listSlotsUC *ucAppointment.ListSlots,
) *ScheduleHandler {
	return &ScheduleHandler{
		getWeeklyUC:      getWeeklyUC,
		updateWeeklyUC:   updateWeeklyUC,
		listOverridesUC:  listOverridesUC,
		setOverrideUC:    setOverrideUC,
		deleteOverrideUC: deleteOverrideUC,
		initializeUC:     initializeUC,
		listSlotsUC:      listSlotsUC,
	}
}

// --------------------------------------------------
// Weekly
// --------------------------------------------------

func (h *ScheduleHandler) Weekly(c *gin.Context) {
	rows, err := h.getWeeklyUC.Execute(c.Request.Context(), middleware.Actor(c).UserID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, dto.FromWeekly(rows, availability.WeekdayName))
}

func (h *ScheduleHandler) UpdateWeekly(c *gin.Context) {
	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	row, err := h.updateWeeklyUC.Execute(c.Request.Context(), middleware.Actor(c).UserID, c.Param("day"), *req.IsEnabled)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, dto.FromWeekly([]models.WeeklyAvailability{*row}, availability.WeekdayName)[0])
}

// --------------------------------------------------
// Date overrides
// --------------------------------------------------

func (h *ScheduleHandler) Overrides(c *gin.Context) {
	rows, err := h.listOverridesUC.Execute(c.Request.Context(), middleware.Actor(c).UserID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, dto.FromOverrides(rows))
}

func (h *ScheduleHandler) SetOverride(c *gin.Context) {
	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	o, err := h.setOverrideUC.Execute(c.Request.Context(), middleware.Actor(c).UserID, c.Param("date"), *req.IsEnabled)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, dto.FromOverrides([]models.DateOverride{*o})[0])
}

func (h *ScheduleHandler) DeleteOverride(c *gin.Context) {
	if err := h.deleteOverrideUC.Execute(c.Request.Context(), middleware.Actor(c).UserID, c.Param("date")); err != nil {
		httperr.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --------------------------------------------------
// Own slot grid
// --------------------------------------------------

// TimeSlots shows the doctor's own grid; approval is not required so a
// doctor can check the schedule before going live.
func (h *ScheduleHandler) TimeSlots(c *gin.Context) {
	slots, err := h.listSlotsUC.Execute(c.Request.Context(), ucAppointment.ListSlotsInput{
		DoctorID: middleware.Actor(c).UserID,
		Date:     c.Query("date"),
		All:      c.Query("all") == "true",
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	// bare array: clients render it directly as the slot picker
	httpresp.OK(c, slots)
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

func (h *ScheduleHandler) Initialize(c *gin.Context) {
	doctorID, ok := idParam(c, "id")
	if !ok {
		return
	}

	n, err := h.initializeUC.Execute(c.Request.Context(), doctorID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctorId": doctorID, "inserted": n})
}
