package booking

import (
	"context"

	"github.com/chentesbarber/booking-api/internal/audit"
	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/models"
	"github.com/chentesbarber/booking-api/internal/timezone"
)

// DeleteService removes a service from the catalog. Under the block
// policy, future appointments for the service make it a conflict; under
// cascade they are removed with it, and every (barber, date) whose
// availability they occupied is invalidated so the freed times show up
// immediately.
type DeleteService struct {
	repo   domain.Repository
	cache  AvailabilityCache
	audit  *audit.Dispatcher
	policy domain.DeletePolicy
}

func NewDeleteService(
	repo domain.Repository,
	cache AvailabilityCache,
	dispatcher *audit.Dispatcher,
	policy domain.DeletePolicy,
) *DeleteService {
	return &DeleteService{
		repo:   repo,
		cache:  cache,
		audit:  dispatcher,
		policy: policy,
	}
}

func (uc *DeleteService) Execute(
	ctx context.Context,
	deletedBy *uint,
	id uint,
) (*models.Service, error) {

	svc, err := uc.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	today := timezone.Today()

	future, err := uc.repo.CountFutureAppointmentsByService(ctx, svc.Name, today)
	if err != nil {
		return nil, err
	}

	if err := uc.policy.CheckDelete(future); err != nil {
		return nil, err
	}

	removed, err := uc.repo.DeleteService(ctx, svc, uc.policy == domain.DeleteCascade, today)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		type slotDay struct {
			barberID uint
			date     string
		}
		seen := make(map[slotDay]struct{}, len(removed))
		for _, ap := range removed {
			day := slotDay{barberID: ap.BarberID, date: ap.Date}
			if _, done := seen[day]; done {
				continue
			}
			seen[day] = struct{}{}
			uc.cache.Invalidate(ctx, ap.BarberID, ap.Date)
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   deletedBy,
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &svc.ID,
		Metadata: map[string]any{
			"name":                 svc.Name,
			"appointments_removed": len(removed),
		},
	})

	return svc, nil
}
