// Package schedule manages the recurring weekly schedule and the per-date
// overrides of doctors.
package schedule

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

func loadDoctor(ctx context.Context, repo domain.Repository, id uint) (*models.User, error) {
	doctor, err := repo.FindDoctor(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	if !doctor.IsDoctor() {
		return nil, domain.ErrNotADoctor
	}
	return doctor, nil
}

// ======================================================
// Initialization
// ======================================================

// InitializeSchedule fills in the default weekly rows a doctor is missing.
// It is safe to run any number of times.
type InitializeSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewInitializeSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
	logger zerolog.Logger,
) *InitializeSchedule {
	return &InitializeSchedule{
		repo:  repo,
		audit: audit,
		log:   logger,
	}
}

func (uc *InitializeSchedule) Execute(ctx context.Context, doctorID uint) (int, error) {
	if _, err := loadDoctor(ctx, uc.repo, doctorID); err != nil {
		return 0, err
	}

	n, err := uc.repo.SeedWeeklyDefaults(ctx, doctorID)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		uc.audit.Dispatch(audit.Event{
			Action:   "weekly_schedule_seeded",
			Entity:   "doctor",
			EntityID: &doctorID,
			Metadata: map[string]int{"inserted": n},
		})
	}
	return n, nil
}

// ExecuteAll seeds every doctor and returns how many rows were inserted.
// A failure on one doctor is logged and does not stop the others.
func (uc *InitializeSchedule) ExecuteAll(ctx context.Context) (int, error) {
	doctors, err := uc.repo.ListDoctors(ctx, false)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, d := range doctors {
		n, err := uc.Execute(ctx, d.ID)
		if err != nil {
			uc.log.Error().Err(err).Uint("doctor_id", d.ID).Msg("seeding weekly schedule failed")
			continue
		}
		total += n
	}
	return total, nil
}

// ======================================================
// Weekly schedule
// ======================================================

type GetWeeklySchedule struct {
	repo domain.Repository
}

func NewGetWeeklySchedule(repo domain.Repository) *GetWeeklySchedule {
	return &GetWeeklySchedule{repo: repo}
}

// Execute always returns seven rows, Sunday first.
func (uc *GetWeeklySchedule) Execute(ctx context.Context, doctorID uint) ([]models.WeeklyAvailability, error) {
	doctor, err := loadDoctor(ctx, uc.repo, doctorID)
	if err != nil {
		return nil, err
	}
	return availability.WeeklySchedule(doctor)
}

// UpdateWeeklyDay toggles one weekday. Hours are clinic policy and are not
// editable here.
type UpdateWeeklyDay struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateWeeklyDay(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateWeeklyDay {
	return &UpdateWeeklyDay{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateWeeklyDay) Execute(
	ctx context.Context,
	doctorID uint,
	dayName string,
	enabled bool,
) (*models.WeeklyAvailability, error) {

	day, err := availability.ParseWeekday(dayName)
	if err != nil {
		return nil, domain.ErrInvalidDay
	}

	doctor, err := loadDoctor(ctx, uc.repo, doctorID)
	if err != nil {
		return nil, err
	}

	rows, err := availability.WeeklySchedule(doctor)
	if err != nil {
		return nil, err
	}

	row := rows[day]
	row.IsEnabled = enabled
	if err := uc.repo.SaveWeeklyDay(ctx, &row); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &doctorID,
		Role:     string(models.RoleDoctor),
		Action:   "weekly_day_updated",
		Entity:   "weekly_availability",
		EntityID: &row.ID,
		Metadata: map[string]any{"day": availability.WeekdayName(day), "isEnabled": enabled},
	})
	return &row, nil
}

// ======================================================
// Date overrides
// ======================================================

type ListDateOverrides struct {
	repo domain.Repository
}

func NewListDateOverrides(repo domain.Repository) *ListDateOverrides {
	return &ListDateOverrides{repo: repo}
}

func (uc *ListDateOverrides) Execute(ctx context.Context, doctorID uint) ([]models.DateOverride, error) {
	doctor, err := loadDoctor(ctx, uc.repo, doctorID)
	if err != nil {
		return nil, err
	}
	return doctor.Doctor.Availability, nil
}

// SetDateOverride opens or closes one calendar date for a doctor, with the
// clinic hours.
type SetDateOverride struct {
	repo  domain.Repository
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewSetDateOverride(
	repo domain.Repository,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *SetDateOverride {
	return &SetDateOverride{
		repo:  repo,
		clock: clock,
		audit: audit,
	}
}

func (uc *SetDateOverride) Execute(
	ctx context.Context,
	doctorID uint,
	date string,
	enabled bool,
) (*models.DateOverride, error) {

	day, err := timezone.ParseDate(date, uc.clock.Location())
	if err != nil {
		return nil, domain.ErrInvalidDate
	}

	if _, err := loadDoctor(ctx, uc.repo, doctorID); err != nil {
		return nil, err
	}

	o := &models.DateOverride{
		DoctorID:     doctorID,
		Date:         day,
		IsEnabled:    enabled,
		WorkingHours: models.ClinicHours(),
	}
	if err := uc.repo.SaveDateOverride(ctx, o); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &doctorID,
		Role:     string(models.RoleDoctor),
		Action:   "date_override_set",
		Entity:   "date_override",
		EntityID: &o.ID,
		Metadata: map[string]any{"date": timezone.FormatDate(day), "isEnabled": enabled},
	})
	return o, nil
}

type DeleteDateOverride struct {
	repo  domain.Repository
	clock timezone.Clock
	audit *audit.Dispatcher
}

func NewDeleteDateOverride(
	repo domain.Repository,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *DeleteDateOverride {
	return &DeleteDateOverride{
		repo:  repo,
		clock: clock,
		audit: audit,
	}
}

func (uc *DeleteDateOverride) Execute(ctx context.Context, doctorID uint, date string) error {
	day, err := timezone.ParseDate(date, uc.clock.Location())
	if err != nil {
		return domain.ErrInvalidDate
	}

	err = uc.repo.DeleteDateOverride(ctx, doctorID, day)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrOverrideNotFound
	}
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &doctorID,
		Role:     string(models.RoleDoctor),
		Action:   "date_override_deleted",
		Entity:   "date_override",
		Metadata: map[string]string{"date": timezone.FormatDate(day)},
	})
	return nil
}

// ======================================================
// Doctor directory
// ======================================================

type ListDoctors struct {
	repo domain.Repository
}

func NewListDoctors(repo domain.Repository) *ListDoctors {
	return &ListDoctors{repo: repo}
}

func (uc *ListDoctors) Execute(ctx context.Context, approvedOnly bool) ([]models.User, error) {
	return uc.repo.ListDoctors(ctx, approvedOnly)
}
