package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timeofday"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	PatientID uint
	DoctorID  uint
	Date      string
	TimeSlot  string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo     domain.Repository
	locker   lock.Locker
	clock    timezone.Clock
	audit    *audit.Dispatcher
	lockWait time.Duration
}

func NewBookAppointment(
	repo domain.Repository,
	locker lock.Locker,
	clock timezone.Clock,
	audit *audit.Dispatcher,
	lockWait time.Duration,
) *BookAppointment {
	if lockWait <= 0 {
		lockWait = 3 * time.Second
	}
	return &BookAppointment{
		repo:     repo,
		locker:   locker,
		clock:    clock,
		audit:    audit,
		lockWait: lockWait,
	}
}

func bookingKey(doctorID uint, day time.Time) string {
	return fmt.Sprintf("booking:%d:%s", doctorID, timezone.FormatDate(day))
}

// ======================================================
// EXECUTE
// ======================================================

// Execute validates a booking request and creates a pending appointment.
// Checks run in a fixed order and the first failure is returned. Everything
// from the daily-duplicate check to the insert runs while holding the
// doctor+date lock.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Date and slot label
	// --------------------------------------------------
	day, err := timezone.ParseDate(in.Date, uc.clock.Location())
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	slotMinutes, err := timeofday.Parse12HourToMinutes(in.TimeSlot)
	if err != nil {
		return nil, domain.ErrMalformedTime
	}
	label := timeofday.To12Hour(slotMinutes)

	// --------------------------------------------------
	// 2. Not in the past
	// --------------------------------------------------
	now := uc.clock.Now()
	today := timezone.CivilDate(now)
	if day.Before(today) {
		return nil, domain.ErrPastDateBooking
	}

	// --------------------------------------------------
	// 3. Bookable doctor
	// --------------------------------------------------
	doctor, err := loadDoctor(ctx, uc.repo, in.DoctorID, true)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// critical section per doctor + date
	// --------------------------------------------------
	lockCtx, cancel := context.WithTimeout(ctx, uc.lockWait)
	defer cancel()

	release, err := uc.locker.Acquire(lockCtx, bookingKey(doctor.ID, day))
	if err != nil {
		return nil, fmt.Errorf("acquire booking lock: %w", err)
	}
	defer release()

	// --------------------------------------------------
	// 4. One appointment per patient per day
	// --------------------------------------------------
	mine, err := uc.repo.FindForPatientOnDate(ctx, in.PatientID, day)
	if err != nil {
		return nil, err
	}
	if len(mine) > 0 {
		return nil, domain.ErrDuplicateDailyBooking
	}

	// --------------------------------------------------
	// 5. Slot free
	// --------------------------------------------------
	taken, err := uc.repo.FindConflicting(ctx, doctor.ID, day, label)
	if err != nil {
		return nil, err
	}
	if len(taken) > 0 {
		return nil, domain.ErrSlotAlreadyBooked
	}

	// --------------------------------------------------
	// 6-7. Working hours and lunch
	// --------------------------------------------------
	window, err := availability.Resolve(doctor, day)
	if err != nil {
		return nil, mapResolveErr(err)
	}

	switch err := availability.CheckSlot(window, slotMinutes); {
	case errors.Is(err, availability.ErrOutsideWorkingHours):
		return nil, domain.ErrOutsideWorkingHours
	case errors.Is(err, availability.ErrDuringLunchBreak):
		return nil, domain.ErrDuringLunchBreak
	case errors.Is(err, availability.ErrOffGrid):
		return nil, domain.ErrSlotNotOnGrid
	case err != nil:
		return nil, fmt.Errorf("doctor %d working hours: %w", doctor.ID, err)
	}

	// --------------------------------------------------
	// 8. Slot not elapsed today
	// --------------------------------------------------
	if day.Equal(today) && slotMinutes <= timezone.MinuteOfDay(now) {
		return nil, domain.ErrPastTimeSlotBooking
	}

	// --------------------------------------------------
	// Create
	// --------------------------------------------------
	ap := &models.Appointment{
		PatientID: in.PatientID,
		DoctorID:  doctor.ID,
		Date:      day,
		TimeSlot:  label,
		Duration:  models.SlotDurationMinutes,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.PatientID,
		Role:     string(models.RolePatient),
		Action:   "appointment_booked",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"doctorId": doctor.ID,
			"date":     timezone.FormatDate(day),
			"timeSlot": label,
		},
	})

	return ap, nil
}
