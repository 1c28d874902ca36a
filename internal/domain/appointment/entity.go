package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to the target status, stamping the matching
// timestamp. The appointment is left untouched on error.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	switch to {
	case StatusAccepted:
		ap.AcceptedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}

	ap.Status = string(to)
	return nil
}

func Accept(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusAccepted, now)
}

func Reject(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusRejected, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCompleted, now)
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCancelled, now)
}

// ===============================
// Authorization
// ===============================

// Actor is the authenticated caller of a lifecycle operation.
type Actor struct {
	UserID uint
	Role   models.Role
}

var doctorDriven = map[Status]bool{
	StatusAccepted:  true,
	StatusRejected:  true,
	StatusCompleted: true,
}

// Authorize checks that actor may move ap to the target status. The owning
// doctor drives accept, reject and complete; the owning patient may only
// cancel; an admin may act on any appointment.
func Authorize(actor Actor, ap *models.Appointment, to Status) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleDoctor:
		if ap.DoctorID == actor.UserID && doctorDriven[to] {
			return nil
		}
	case models.RolePatient:
		if ap.PatientID == actor.UserID && to == StatusCancelled {
			return nil
		}
	}
	return ErrNotAuthorized
}

// CanView reports whether actor may read ap.
func CanView(actor Actor, ap *models.Appointment) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleDoctor:
		return ap.DoctorID == actor.UserID
	case models.RolePatient:
		return ap.PatientID == actor.UserID
	}
	return false
}
