package booking

import (
	"context"

	"github.com/chentesbarber/booking-api/internal/audit"
	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/models"
)

type DeleteAppointment struct {
	repo  domain.Repository
	cache AvailabilityCache
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	cache AvailabilityCache,
	dispatcher *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		cache: cache,
		audit: dispatcher,
	}
}

// Execute removes an appointment. Its slot stays configured in the
// availability store, so it becomes bookable again immediately.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	id uint,
	deletedBy *uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.DeleteAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, ap.BarberID, ap.Date)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   deletedBy,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
