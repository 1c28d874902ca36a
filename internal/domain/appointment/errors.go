package appointment

import (
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// Booking and lifecycle failures. Each one is a business error carrying a
// stable code that the HTTP layer maps to a status and a message.
var (
	ErrInvalidDate             = httperr.ErrBusiness("invalid_date")
	ErrMalformedTime           = httperr.ErrBusiness("malformed_time")
	ErrPastDateBooking         = httperr.ErrBusiness("past_date_booking")
	ErrPastTimeSlotBooking     = httperr.ErrBusiness("past_time_slot_booking")
	ErrPastDateSlots           = httperr.ErrBusiness("past_date_slots")
	ErrDoctorUnavailable       = httperr.ErrBusiness("doctor_unavailable")
	ErrOutsideWorkingHours     = httperr.ErrBusiness("outside_working_hours")
	ErrDuringLunchBreak        = httperr.ErrBusiness("during_lunch_break")
	ErrSlotNotOnGrid           = httperr.ErrBusiness("slot_not_on_grid")
	ErrSlotAlreadyBooked       = httperr.ErrBusiness("slot_already_booked")
	ErrDuplicateDailyBooking   = httperr.ErrBusiness("duplicate_daily_booking")
	ErrInvalidStatusTransition = httperr.ErrBusiness("invalid_status_transition")
	ErrNotAuthorized           = httperr.ErrBusiness("not_authorized")

	ErrDoctorNotFound      = httperr.ErrBusiness("doctor_not_found")
	ErrNotADoctor          = httperr.ErrBusiness("not_a_doctor")
	ErrDayUnavailable      = httperr.ErrBusiness("day_unavailable")
	ErrAppointmentNotFound = httperr.ErrBusiness("appointment_not_found")
	ErrInvalidStatus       = httperr.ErrBusiness("invalid_status")
	ErrInvalidDay          = httperr.ErrBusiness("invalid_day")
	ErrOverrideNotFound    = httperr.ErrBusiness("override_not_found")
)

// ErrNotFound is returned by repositories when a row does not exist.
// Use cases translate it into the matching business error.
var ErrNotFound = errors.New("record not found")
