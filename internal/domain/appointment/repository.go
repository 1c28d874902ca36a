package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ListFilter narrows ListAppointments. Zero values mean "any".
type ListFilter struct {
	DoctorID  uint
	PatientID uint
	Date      *time.Time
	Status    Status
}

type Repository interface {
	// -------- Users --------
	FindUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Doctor --------
	FindDoctor(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	ListDoctors(
		ctx context.Context,
		approvedOnly bool,
	) ([]models.User, error)

	// SeedWeeklyDefaults inserts the default rows for every weekday the
	// doctor has no row for and reports how many were inserted. Running it
	// again, or concurrently, is a no-op.
	SeedWeeklyDefaults(
		ctx context.Context,
		doctorID uint,
	) (int, error)

	SaveWeeklyDay(
		ctx context.Context,
		row *models.WeeklyAvailability,
	) error

	SaveDateOverride(
		ctx context.Context,
		o *models.DateOverride,
	) error

	DeleteDateOverride(
		ctx context.Context,
		doctorID uint,
		date time.Time,
	) error

	// -------- Appointment (conflict lookups) --------

	// FindConflicting returns the doctor's non-cancelled appointments on
	// date, restricted to timeSlot unless it is empty.
	FindConflicting(
		ctx context.Context,
		doctorID uint,
		date time.Time,
		timeSlot string,
	) ([]models.Appointment, error)

	FindForPatientOnDate(
		ctx context.Context,
		patientID uint,
		date time.Time,
	) ([]models.Appointment, error)

	// CreateAppointment must refuse a second active appointment for the same
	// (doctor, date, slot) or (patient, date) with ErrSlotAlreadyBooked or
	// ErrDuplicateDailyBooking.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read / state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// UpdateAppointment writes ap only while the stored status is still
	// from. A concurrent change that got there first yields
	// ErrInvalidStatusTransition and leaves the row untouched.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	ListAppointments(
		ctx context.Context,
		f ListFilter,
	) ([]models.Appointment, error)
}
