package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// MemoryRepository keeps everything in process. It enforces the same two
// booking constraints as the database indexes, atomically under its lock.
// Used with STORE_DRIVER=memory and by tests.
type MemoryRepository struct {
	mu sync.RWMutex

	users        map[uint]models.User
	appointments map[uint]models.Appointment
	nextUserID   uint
	nextApptID   uint
	nextRowID    uint
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:        make(map[uint]models.User),
		appointments: make(map[uint]models.Appointment),
	}
}

// AddUser stores u, assigning an ID when it has none. Doctor profiles are
// seeded with the default weekly schedule, like the gorm AfterCreate hook.
func (r *MemoryRepository) AddUser(u models.User) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == 0 {
		r.nextUserID++
		u.ID = r.nextUserID
	} else if u.ID > r.nextUserID {
		r.nextUserID = u.ID
	}

	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now

	if u.Doctor != nil {
		p := *u.Doctor
		p.UserID = u.ID
		if p.WeeklyAvailability == nil {
			p.WeeklyAvailability = r.assignRowIDs(models.DefaultWeeklyRows(u.ID))
		}
		u.Doctor = &p
	}

	r.users[u.ID] = cloneUser(u)
	return cloneUser(u)
}

func (r *MemoryRepository) assignRowIDs(rows []models.WeeklyAvailability) []models.WeeklyAvailability {
	for i := range rows {
		r.nextRowID++
		rows[i].ID = r.nextRowID
	}
	return rows
}

func cloneUser(u models.User) models.User {
	if u.Doctor == nil {
		return u
	}
	p := *u.Doctor
	p.WeeklyAvailability = append([]models.WeeklyAvailability(nil), p.WeeklyAvailability...)
	p.Availability = append([]models.DateOverride(nil), p.Availability...)
	u.Doctor = &p
	return u
}

// --------------------------------------------------
// Doctor
// --------------------------------------------------

func (r *MemoryRepository) FindUser(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := cloneUser(u)
	if c.Doctor != nil {
		c.Doctor.WeeklyAvailability = nil
		c.Doctor.Availability = nil
	}
	return &c, nil
}

func (r *MemoryRepository) FindDoctor(_ context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := cloneUser(u)
	return &c, nil
}

func (r *MemoryRepository) ListDoctors(_ context.Context, approvedOnly bool) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.User
	for _, u := range r.users {
		if !u.IsDoctor() {
			continue
		}
		if approvedOnly && !u.Doctor.IsApproved {
			continue
		}
		c := cloneUser(u)
		c.Doctor.WeeklyAvailability = nil
		c.Doctor.Availability = nil
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryRepository) SeedWeeklyDefaults(_ context.Context, doctorID uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[doctorID]
	if !ok || u.Doctor == nil {
		return 0, domain.ErrNotFound
	}

	have := map[int]bool{}
	for _, row := range u.Doctor.WeeklyAvailability {
		have[row.Weekday] = true
	}

	inserted := 0
	for _, row := range models.DefaultWeeklyRows(doctorID) {
		if have[row.Weekday] {
			continue
		}
		r.nextRowID++
		row.ID = r.nextRowID
		u.Doctor.WeeklyAvailability = append(u.Doctor.WeeklyAvailability, row)
		inserted++
	}
	sort.Slice(u.Doctor.WeeklyAvailability, func(i, j int) bool {
		return u.Doctor.WeeklyAvailability[i].Weekday < u.Doctor.WeeklyAvailability[j].Weekday
	})
	r.users[doctorID] = u
	return inserted, nil
}

func (r *MemoryRepository) SaveWeeklyDay(_ context.Context, row *models.WeeklyAvailability) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[row.DoctorID]
	if !ok || u.Doctor == nil {
		return domain.ErrNotFound
	}

	row.UpdatedAt = time.Now()
	for i, existing := range u.Doctor.WeeklyAvailability {
		if existing.Weekday == row.Weekday {
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
			u.Doctor.WeeklyAvailability[i] = *row
			r.users[row.DoctorID] = u
			return nil
		}
	}

	r.nextRowID++
	row.ID = r.nextRowID
	row.CreatedAt = row.UpdatedAt
	u.Doctor.WeeklyAvailability = append(u.Doctor.WeeklyAvailability, *row)
	r.users[row.DoctorID] = u
	return nil
}

func (r *MemoryRepository) SaveDateOverride(_ context.Context, o *models.DateOverride) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[o.DoctorID]
	if !ok || u.Doctor == nil {
		return domain.ErrNotFound
	}

	o.Date = timezone.CivilDate(o.Date)
	o.UpdatedAt = time.Now()
	for i, existing := range u.Doctor.Availability {
		if existing.Date.Equal(o.Date) {
			o.ID = existing.ID
			o.CreatedAt = existing.CreatedAt
			u.Doctor.Availability[i] = *o
			r.users[o.DoctorID] = u
			return nil
		}
	}

	r.nextRowID++
	o.ID = r.nextRowID
	o.CreatedAt = o.UpdatedAt
	u.Doctor.Availability = append(u.Doctor.Availability, *o)
	sort.Slice(u.Doctor.Availability, func(i, j int) bool {
		return u.Doctor.Availability[i].Date.Before(u.Doctor.Availability[j].Date)
	})
	r.users[o.DoctorID] = u
	return nil
}

func (r *MemoryRepository) DeleteDateOverride(_ context.Context, doctorID uint, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[doctorID]
	if !ok || u.Doctor == nil {
		return domain.ErrNotFound
	}

	day := timezone.CivilDate(date)
	for i, existing := range u.Doctor.Availability {
		if existing.Date.Equal(day) {
			u.Doctor.Availability = append(u.Doctor.Availability[:i], u.Doctor.Availability[i+1:]...)
			r.users[doctorID] = u
			return nil
		}
	}
	return domain.ErrNotFound
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func active(ap models.Appointment) bool {
	return domain.Status(ap.Status).Active()
}

func (r *MemoryRepository) FindConflicting(
	_ context.Context,
	doctorID uint,
	date time.Time,
	timeSlot string,
) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := timezone.CivilDate(date)
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DoctorID != doctorID || !ap.Date.Equal(day) || !active(ap) {
			continue
		}
		if timeSlot != "" && ap.TimeSlot != timeSlot {
			continue
		}
		out = append(out, ap)
	}
	SortAppointments(out)
	return out, nil
}

func (r *MemoryRepository) FindForPatientOnDate(
	_ context.Context,
	patientID uint,
	date time.Time,
) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := timezone.CivilDate(date)
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.PatientID == patientID && ap.Date.Equal(day) && active(ap) {
			out = append(out, ap)
		}
	}
	SortAppointments(out)
	return out, nil
}

func (r *MemoryRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ap.Date = timezone.CivilDate(ap.Date)
	if err := r.checkUnique(*ap); err != nil {
		return err
	}

	r.nextApptID++
	ap.ID = r.nextApptID
	now := time.Now()
	ap.CreatedAt, ap.UpdatedAt = now, now
	r.appointments[ap.ID] = stripRefs(*ap)
	return nil
}

// checkUnique mirrors the two partial unique indexes. Caller holds mu.
func (r *MemoryRepository) checkUnique(ap models.Appointment) error {
	if !active(ap) {
		return nil
	}
	for id, other := range r.appointments {
		if id == ap.ID || !active(other) || !other.Date.Equal(ap.Date) {
			continue
		}
		if other.DoctorID == ap.DoctorID && other.TimeSlot == ap.TimeSlot {
			return domain.ErrSlotAlreadyBooked
		}
		if other.PatientID == ap.PatientID {
			return domain.ErrDuplicateDailyBooking
		}
	}
	return nil
}

func stripRefs(ap models.Appointment) models.Appointment {
	ap.Patient = models.User{}
	ap.Doctor = models.User{}
	return ap
}

func (r *MemoryRepository) withRefs(ap models.Appointment) models.Appointment {
	if u, ok := r.users[ap.PatientID]; ok {
		ap.Patient = cloneUser(u)
	}
	if u, ok := r.users[ap.DoctorID]; ok {
		d := cloneUser(u)
		if d.Doctor != nil {
			d.Doctor.WeeklyAvailability = nil
			d.Doctor.Availability = nil
		}
		ap.Doctor = d
	}
	return ap
}

func (r *MemoryRepository) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ap, ok := r.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := r.withRefs(ap)
	return &out, nil
}

func (r *MemoryRepository) UpdateAppointment(_ context.Context, ap *models.Appointment, from domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[ap.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Status != string(from) {
		return domain.ErrInvalidStatusTransition
	}
	if err := r.checkUnique(*ap); err != nil {
		return err
	}
	ap.UpdatedAt = time.Now()
	r.appointments[ap.ID] = stripRefs(*ap)
	return nil
}

func (r *MemoryRepository) DeleteAppointment(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.appointments, id)
	return nil
}

func (r *MemoryRepository) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if f.DoctorID != 0 && ap.DoctorID != f.DoctorID {
			continue
		}
		if f.PatientID != 0 && ap.PatientID != f.PatientID {
			continue
		}
		if f.Date != nil && !ap.Date.Equal(timezone.CivilDate(*f.Date)) {
			continue
		}
		if f.Status != "" && ap.Status != string(f.Status) {
			continue
		}
		out = append(out, r.withRefs(ap))
	}
	SortAppointments(out)
	return out, nil
}

var _ domain.Repository = (*MemoryRepository)(nil)
