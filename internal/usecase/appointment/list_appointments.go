package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type ListAppointmentsInput struct {
	Date   string
	Status string

	// Only honoured for admins; other roles are scoped to themselves.
	DoctorID  uint
	PatientID uint
}

type ListAppointments struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListAppointments(
	repo domain.Repository,
	clock timezone.Clock,
) *ListAppointments {
	return &ListAppointments{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor domain.Actor,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	var f domain.ListFilter

	switch actor.Role {
	case models.RoleAdmin:
		f.DoctorID = in.DoctorID
		f.PatientID = in.PatientID
	case models.RoleDoctor:
		f.DoctorID = actor.UserID
	case models.RolePatient:
		f.PatientID = actor.UserID
	default:
		return nil, domain.ErrNotAuthorized
	}

	if in.Date != "" {
		day, err := timezone.ParseDate(in.Date, uc.clock.Location())
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		f.Date = &day
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}

	apps, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.FromAppointments(apps), nil
}

// ======================================================
// Single appointment
// ======================================================

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if !domain.CanView(actor, ap) {
		return nil, domain.ErrNotAuthorized
	}
	return ap, nil
}

// DeleteAppointment is the admin override: the only path that removes an
// appointment instead of moving it to a terminal status.
type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uint,
) error {

	if actor.Role != models.RoleAdmin {
		return domain.ErrNotAuthorized
	}

	err := uc.repo.DeleteAppointment(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrAppointmentNotFound
	}
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Role:     string(actor.Role),
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &id,
	})
	return nil
}
