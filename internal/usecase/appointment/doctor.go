package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// loadDoctor fetches a user that must be a doctor, and a bookable one when
// bookable is set. Lookup failures become business errors; storage errors
// pass through.
func loadDoctor(
	ctx context.Context,
	repo domain.Repository,
	id uint,
	bookable bool,
) (*models.User, error) {

	doctor, err := repo.FindDoctor(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		if bookable {
			return nil, domain.ErrDoctorUnavailable
		}
		return nil, domain.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}

	if bookable && !doctor.IsBookable() {
		return nil, domain.ErrDoctorUnavailable
	}
	if !doctor.IsDoctor() {
		return nil, domain.ErrNotADoctor
	}
	return doctor, nil
}

func mapResolveErr(err error) error {
	switch {
	case errors.Is(err, availability.ErrDoctorNotFound):
		return domain.ErrDoctorNotFound
	case errors.Is(err, availability.ErrNotADoctor):
		return domain.ErrNotADoctor
	}
	return err
}
