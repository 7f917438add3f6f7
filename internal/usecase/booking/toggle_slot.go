package booking

import (
	"context"

	"github.com/chentesbarber/booking-api/internal/audit"
	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/validators"
)

// ToggleSlot flips a single time on or off for a (barber, date):
// present removes it, absent adds it. Toggling twice restores the
// original set.
type ToggleSlot struct {
	repo  domain.Repository
	cache AvailabilityCache
	audit *audit.Dispatcher
}

func NewToggleSlot(
	repo domain.Repository,
	cache AvailabilityCache,
	dispatcher *audit.Dispatcher,
) *ToggleSlot {
	return &ToggleSlot{
		repo:  repo,
		cache: cache,
		audit: dispatcher,
	}
}

func (uc *ToggleSlot) Execute(
	ctx context.Context,
	toggledBy *uint,
	barberID uint,
	date string,
	timeOfDay string,
) (added bool, err error) {

	normalizedDate, ok := validators.NormalizeDate(date)
	if !ok {
		return false, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid date")
	}

	hm, ok := validators.NormalizeTimeOfDay(timeOfDay)
	if !ok {
		return false, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid time")
	}

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return false, err
	}

	added, err = uc.repo.ToggleSlot(ctx, barberID, normalizedDate, hm)
	if err != nil {
		return false, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, barberID, normalizedDate)
	}

	action := "slot_closed"
	if added {
		action = "slot_opened"
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   toggledBy,
		Action:   action,
		Entity:   "availability",
		EntityID: &barberID,
		Metadata: map[string]any{
			"date": normalizedDate,
			"time": hm,
		},
	})

	return added, nil
}
