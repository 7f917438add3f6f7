package booking

import (
	"context"
	"sort"

	"github.com/chentesbarber/booking-api/internal/audit"
	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/validators"
)

// SaveAvailability replaces the whole slot set for a (barber, date) in
// one atomic step. The admin UI stages toggles locally and commits them
// together through this call.
type SaveAvailability struct {
	repo  domain.Repository
	cache AvailabilityCache
	audit *audit.Dispatcher
}

func NewSaveAvailability(
	repo domain.Repository,
	cache AvailabilityCache,
	dispatcher *audit.Dispatcher,
) *SaveAvailability {
	return &SaveAvailability{
		repo:  repo,
		cache: cache,
		audit: dispatcher,
	}
}

func (uc *SaveAvailability) Execute(
	ctx context.Context,
	savedBy *uint,
	barberID uint,
	date string,
	times []string,
) ([]string, error) {

	normalizedDate, ok := validators.NormalizeDate(date)
	if !ok {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid date")
	}

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(times))
	normalized := make([]string, 0, len(times))
	for _, t := range times {
		hm, ok := validators.NormalizeTimeOfDay(t)
		if !ok {
			return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid time "+t)
		}
		if _, dup := seen[hm]; dup {
			continue
		}
		seen[hm] = struct{}{}
		normalized = append(normalized, hm)
	}
	sort.Strings(normalized)

	if err := uc.repo.ReplaceSlots(ctx, barberID, normalizedDate, normalized); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, barberID, normalizedDate)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   savedBy,
		Action:   "availability_saved",
		Entity:   "availability",
		EntityID: &barberID,
		Metadata: map[string]any{
			"date":  normalizedDate,
			"times": normalized,
		},
	})

	return normalized, nil
}
