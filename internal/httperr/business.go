package httperr

import (
	"errors"
	"net/http"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

type description struct {
	status  int
	message string
}

var catalog = map[string]description{
	"invalid_date":              {http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY."},
	"malformed_time":            {http.StatusBadRequest, "Invalid time format. Use H:MM AM/PM."},
	"past_date_booking":         {http.StatusBadRequest, "Cannot book appointments for past dates."},
	"past_time_slot_booking":    {http.StatusBadRequest, "Cannot book a time slot that has already passed today."},
	"past_date_slots":           {http.StatusBadRequest, "Cannot fetch time slots for past dates."},
	"doctor_unavailable":        {http.StatusBadRequest, "Doctor not found or not available for booking."},
	"outside_working_hours":     {http.StatusBadRequest, "Selected time slot is outside the doctor's working hours."},
	"during_lunch_break":        {http.StatusBadRequest, "Selected time slot falls within the doctor's lunch break."},
	"slot_not_on_grid":          {http.StatusBadRequest, "Selected time is not one of the doctor's slots."},
	"slot_already_booked":       {http.StatusConflict, "This time slot is already booked."},
	"duplicate_daily_booking":   {http.StatusConflict, "You already have an appointment on this date."},
	"invalid_status_transition": {http.StatusBadRequest, "The appointment cannot move to the requested status."},
	"not_authorized":            {http.StatusForbidden, "You are not authorized to perform this action."},
	"doctor_not_found":          {http.StatusNotFound, "Doctor not found."},
	"not_a_doctor":              {http.StatusBadRequest, "The requested user is not a doctor."},
	"day_unavailable":           {http.StatusNotFound, "Doctor is not available on this date."},
	"appointment_not_found":     {http.StatusNotFound, "Appointment not found."},
	"invalid_status":            {http.StatusBadRequest, "Unknown appointment status."},
	"invalid_day":               {http.StatusBadRequest, "Invalid day. Use monday to sunday."},
	"override_not_found":        {http.StatusNotFound, "No availability override exists for this date."},
	"invalid_input":             {http.StatusBadRequest, "Invalid request body."},
	"invalid_id":                {http.StatusBadRequest, "Invalid id."},
}

// Describe returns the HTTP status and user-facing message for a business
// code. Unknown codes are treated as plain bad requests.
func Describe(code string) (int, string) {
	if d, ok := catalog[code]; ok {
		return d.status, d.message
	}
	return http.StatusBadRequest, code
}
