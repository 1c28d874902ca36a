package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

var clock = timezone.FixedClock{T: time.Date(2025, time.October, 20, 9, 0, 0, 0, time.UTC)}

func newDoctor(repo *repository.MemoryRepository, weekly []models.WeeklyAvailability) models.User {
	return repo.AddUser(models.User{
		Name: "Dr. Okafor",
		Role: models.RoleDoctor,
		Doctor: &models.DoctorProfile{
			Specialization:     models.SpecCardiologist,
			IsApproved:         true,
			WeeklyAvailability: weekly,
		},
	})
}

func TestInitializeSchedule_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	doc := newDoctor(repo, []models.WeeklyAvailability{
		{DoctorID: 1, Weekday: int(time.Monday), IsEnabled: false, WorkingHours: models.ClinicHours()},
	})
	patient := repo.AddUser(models.User{Role: models.RolePatient})

	uc := NewInitializeSchedule(repo, nil, zerolog.Nop())

	n, err := uc.Execute(ctx, doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 6 {
		t.Fatalf("expected 6 missing days inserted, got %d", n)
	}

	n, _ = uc.Execute(ctx, doc.ID)
	if n != 0 {
		t.Fatalf("second run should insert nothing, got %d", n)
	}

	// the stored Monday choice survives seeding
	rows, _ := NewGetWeeklySchedule(repo).Execute(ctx, doc.ID)
	if rows[time.Monday].IsEnabled {
		t.Fatal("seeding overwrote an existing row")
	}

	if _, err := uc.Execute(ctx, patient.ID); !errors.Is(err, domain.ErrNotADoctor) {
		t.Fatalf("expected ErrNotADoctor, got %v", err)
	}
	if _, err := uc.Execute(ctx, 404); !errors.Is(err, domain.ErrDoctorNotFound) {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestInitializeSchedule_All(t *testing.T) {
	repo := repository.NewMemoryRepository()
	newDoctor(repo, []models.WeeklyAvailability{})
	newDoctor(repo, nil) // seeded on creation

	n, err := NewInitializeSchedule(repo, nil, zerolog.Nop()).ExecuteAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Fatalf("expected 7 rows inserted, got %d", n)
	}
}

func TestWeeklySchedule_Toggle(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	doc := newDoctor(repo, nil)

	rows, err := NewGetWeeklySchedule(repo).Execute(ctx, doc.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 7 || rows[time.Sunday].IsEnabled || !rows[time.Friday].IsEnabled {
		t.Fatalf("unexpected default schedule: %+v", rows)
	}

	update := NewUpdateWeeklyDay(repo, nil)
	row, err := update.Execute(ctx, doc.ID, "Saturday", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !row.IsEnabled || row.Weekday != int(time.Saturday) || row.WorkingHours != models.ClinicHours() {
		t.Fatalf("unexpected row: %+v", row)
	}

	doctor, _ := repo.FindDoctor(ctx, doc.ID)
	w, _ := availability.Resolve(doctor, time.Date(2025, time.October, 25, 0, 0, 0, 0, time.UTC))
	if !w.Available || w.Source != availability.SourceWeekly {
		t.Fatalf("saturday should now be open from the weekly row: %+v", w)
	}

	if _, err := update.Execute(ctx, doc.ID, "someday", true); !errors.Is(err, domain.ErrInvalidDay) {
		t.Fatalf("expected ErrInvalidDay, got %v", err)
	}
}

func TestDateOverrides(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	doc := newDoctor(repo, nil)

	set := NewSetDateOverride(repo, clock, nil)
	if _, err := set.Execute(ctx, doc.ID, "2025-10-22", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// upsert on the same date
	o, err := set.Execute(ctx, doc.ID, "22/10/2025", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !o.IsEnabled {
		t.Fatal("override not updated")
	}
	if _, err := set.Execute(ctx, doc.ID, "2025-10-25", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, _ := NewListDateOverrides(repo).Execute(ctx, doc.ID)
	if len(list) != 2 || timezone.FormatDate(list[0].Date) != "2025-10-22" {
		t.Fatalf("unexpected overrides: %+v", list)
	}

	if _, err := set.Execute(ctx, doc.ID, "not a date", true); !errors.Is(err, domain.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	del := NewDeleteDateOverride(repo, clock, nil)
	if err := del.Execute(ctx, doc.ID, "2025-10-22"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := del.Execute(ctx, doc.ID, "2025-10-22"); !errors.Is(err, domain.ErrOverrideNotFound) {
		t.Fatalf("expected ErrOverrideNotFound, got %v", err)
	}
}

func TestListDoctors(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepository()
	newDoctor(repo, nil)
	repo.AddUser(models.User{Name: "Dr. Pending", Role: models.RoleDoctor, Doctor: &models.DoctorProfile{}})
	repo.AddUser(models.User{Name: "Patient", Role: models.RolePatient})

	uc := NewListDoctors(repo)

	all, _ := uc.Execute(ctx, false)
	approved, _ := uc.Execute(ctx, true)
	if len(all) != 2 || len(approved) != 1 {
		t.Fatalf("expected 2 doctors and 1 approved, got %d and %d", len(all), len(approved))
	}
}
