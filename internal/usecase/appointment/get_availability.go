package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// GetAvailability resolves a doctor's working window on a date. A closed
// day is reported as ErrDayUnavailable.
type GetAvailability struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewGetAvailability(repo domain.Repository, clock timezone.Clock) *GetAvailability {
	return &GetAvailability{repo: repo, clock: clock}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	doctorID uint,
	date string,
	bookableOnly bool,
) (availability.Window, error) {

	day, err := timezone.ParseDate(date, uc.clock.Location())
	if err != nil {
		return availability.Window{}, domain.ErrInvalidDate
	}

	doctor, err := loadDoctor(ctx, uc.repo, doctorID, bookableOnly)
	if err != nil {
		return availability.Window{}, err
	}

	window, err := availability.Resolve(doctor, day)
	if err != nil {
		return availability.Window{}, mapResolveErr(err)
	}
	if !window.Available {
		return window, domain.ErrDayUnavailable
	}
	return window, nil
}

// ======================================================
// Slot grid
// ======================================================

type ListSlotsInput struct {
	DoctorID uint
	Date     string

	// All keeps booked and elapsed slots in the result, flagged unavailable.
	All bool

	// BookableOnly rejects doctors that are not approved.
	BookableOnly bool
}

type ListSlots struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListSlots(repo domain.Repository, clock timezone.Clock) *ListSlots {
	return &ListSlots{repo: repo, clock: clock}
}

// Execute returns the day's slot grid. A closed day yields an empty grid;
// a past day is refused.
func (uc *ListSlots) Execute(
	ctx context.Context,
	in ListSlotsInput,
) ([]availability.Slot, error) {

	day, err := timezone.ParseDate(in.Date, uc.clock.Location())
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	if day.Before(timezone.CivilDate(uc.clock.Now())) {
		return nil, domain.ErrPastDateSlots
	}

	doctor, err := loadDoctor(ctx, uc.repo, in.DoctorID, in.BookableOnly)
	if err != nil {
		return nil, err
	}

	window, err := availability.Resolve(doctor, day)
	if err != nil {
		return nil, mapResolveErr(err)
	}
	if !window.Available {
		return []availability.Slot{}, nil
	}

	labels, err := availability.GenerateSlots(window.Hours)
	if err != nil {
		return nil, err
	}

	booked, err := uc.repo.FindConflicting(ctx, doctor.ID, day, "")
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, ap := range booked {
		taken[ap.TimeSlot] = true
	}

	cutoff := availability.Cutoff(day, uc.clock.Now())
	return availability.BuildGrid(labels, taken, cutoff, in.All), nil
}
