package booking

import (
	"context"
	"sort"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/httperr"
	"github.com/chentesbarber/booking-api/internal/validators"
)

// AvailabilityCache is satisfied by cache.Availability. A nil cache
// disables caching entirely.
type AvailabilityCache interface {
	Get(ctx context.Context, barberID uint, date string) ([]string, bool)
	Set(ctx context.Context, barberID uint, date string, times []string)
	Invalidate(ctx context.Context, barberID uint, date string)
}

// AvailableTimes is the slot resolver: the barber's configured slots
// for a date minus the times already consumed by an appointment.
type AvailableTimes struct {
	repo  domain.Repository
	cache AvailabilityCache
}

func NewAvailableTimes(repo domain.Repository, cache AvailabilityCache) *AvailableTimes {
	return &AvailableTimes{repo: repo, cache: cache}
}

func (uc *AvailableTimes) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) ([]string, error) {

	normalized, ok := validators.NormalizeDate(date)
	if !ok {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "invalid date")
	}

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if times, hit := uc.cache.Get(ctx, barberID, normalized); hit {
			return times, nil
		}
	}

	configured, err := uc.repo.GetSlots(ctx, barberID, normalized)
	if err != nil {
		return nil, err
	}

	booked, err := uc.repo.BookedTimes(ctx, barberID, normalized)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	times := make([]string, 0, len(configured))
	for _, t := range configured {
		if _, used := taken[t]; !used {
			times = append(times, t)
		}
	}

	// tokens are zero-padded, so string order is chronological
	sort.Strings(times)

	if uc.cache != nil {
		uc.cache.Set(ctx, barberID, normalized, times)
	}

	return times, nil
}
