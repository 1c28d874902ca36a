package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// Partial unique indexes created by db.Migrate. Their names are how a
// unique violation is told apart.
const (
	IndexDoctorSlot = "ux_appointments_doctor_slot"
	IndexPatientDay = "ux_appointments_patient_day"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// mapUniqueViolation turns a unique violation on one of the booking
// indexes into the business error the caller expects.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case IndexDoctorSlot:
		return domain.ErrSlotAlreadyBooked
	case IndexPatientDay:
		return domain.ErrDuplicateDailyBooking
	}
	return err
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AppointmentGormRepository) FindUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// --------------------------------------------------
// Doctor
// --------------------------------------------------

func (r *AppointmentGormRepository) FindDoctor(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Doctor.WeeklyAvailability", func(db *gorm.DB) *gorm.DB {
			return db.Order("weekday ASC")
		}).
		Preload("Doctor.Availability", func(db *gorm.DB) *gorm.DB {
			return db.Order("date ASC")
		}).
		First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *AppointmentGormRepository) ListDoctors(
	ctx context.Context,
	approvedOnly bool,
) ([]models.User, error) {

	q := r.db.WithContext(ctx).
		Joins("Doctor").
		Where("users.role = ?", string(models.RoleDoctor))

	if approvedOnly {
		q = q.Where(clause.Eq{
			Column: clause.Column{Table: "Doctor", Name: "is_approved"},
			Value:  true,
		})
	}

	var users []models.User
	if err := q.Order("users.name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *AppointmentGormRepository) SeedWeeklyDefaults(
	ctx context.Context,
	doctorID uint,
) (int, error) {

	rows := models.DefaultWeeklyRows(doctorID)
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "weekday"}},
			DoNothing: true,
		}).
		Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	return int(res.RowsAffected), nil
}

var hourColumns = []string{"is_enabled", "start_time", "end_time", "lunch_start", "lunch_end", "updated_at"}

func (r *AppointmentGormRepository) SaveWeeklyDay(
	ctx context.Context,
	row *models.WeeklyAvailability,
) error {
	// the conflict target decides insert or update, never the primary key
	row.ID = 0
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns(hourColumns),
		}).
		Create(row).Error
}

func (r *AppointmentGormRepository) SaveDateOverride(
	ctx context.Context,
	o *models.DateOverride,
) error {
	o.ID = 0
	o.Date = timezone.CivilDate(o.Date)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns(hourColumns),
		}).
		Create(o).Error
}

func (r *AppointmentGormRepository) DeleteDateOverride(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) error {

	res := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, timezone.FormatDate(date)).
		Delete(&models.DateOverride{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Appointment (conflict lookups)
// --------------------------------------------------

func (r *AppointmentGormRepository) FindConflicting(
	ctx context.Context,
	doctorID uint,
	date time.Time,
	timeSlot string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ? AND status <> ?",
			doctorID, timezone.FormatDate(date), string(domain.StatusCancelled))
	if timeSlot != "" {
		q = q.Where("time_slot = ?", timeSlot)
	}

	var apps []models.Appointment
	if err := q.Find(&apps).Error; err != nil {
		return nil, err
	}
	SortAppointments(apps)
	return apps, nil
}

func (r *AppointmentGormRepository) FindForPatientOnDate(
	ctx context.Context,
	patientID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("patient_id = ? AND date = ? AND status <> ?",
			patientID, timezone.FormatDate(date), string(domain.StatusCancelled)).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// CreateAppointment re-checks both booking constraints under row locks and
// then inserts. The partial unique indexes remain the final arbiter: a
// concurrent insert that slips past the probe fails with 23505 and is
// mapped to the same business error.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	ap.Date = timezone.CivilDate(ap.Date)
	day := timezone.FormatDate(ap.Date)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slotIDs, dayIDs []uint

		if err := tx.Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doctor_id = ? AND date = ? AND time_slot = ? AND status <> ?",
				ap.DoctorID, day, ap.TimeSlot, string(domain.StatusCancelled)).
			Pluck("id", &slotIDs).Error; err != nil {
			return err
		}
		if len(slotIDs) > 0 {
			return domain.ErrSlotAlreadyBooked
		}

		if err := tx.Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("patient_id = ? AND date = ? AND status <> ?",
				ap.PatientID, day, string(domain.StatusCancelled)).
			Pluck("id", &dayIDs).Error; err != nil {
			return err
		}
		if len(dayIDs) > 0 {
			return domain.ErrDuplicateDailyBooking
		}

		return tx.Omit(clause.Associations).Create(ap).Error
	})

	return mapUniqueViolation(err)
}

// --------------------------------------------------
// Appointment (read / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Doctor.Doctor").
		First(&ap, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ap, nil
}

var statusColumns = []string{"status", "accepted_at", "completed_at", "cancelled_at", "updated_at"}

// UpdateAppointment is a compare-and-set on status: the WHERE clause
// carries the status the caller read, so of two racing transitions only
// the first one matches a row.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(ap).
		Where("status = ?", string(from)).
		Select(statusColumns).
		Updates(ap)
	if res.Error != nil {
		return mapUniqueViolation(res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrInvalidStatusTransition
	}
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Doctor.Doctor")

	if f.DoctorID != 0 {
		q = q.Where("doctor_id = ?", f.DoctorID)
	}
	if f.PatientID != 0 {
		q = q.Where("patient_id = ?", f.PatientID)
	}
	if f.Date != nil {
		q = q.Where("date = ?", timezone.FormatDate(*f.Date))
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var apps []models.Appointment
	if err := q.Order("date ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	SortAppointments(apps)
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
