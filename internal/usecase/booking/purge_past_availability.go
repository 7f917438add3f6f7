package booking

import (
	"context"
	"log"

	domain "github.com/chentesbarber/booking-api/internal/domain/booking"
	"github.com/chentesbarber/booking-api/internal/timezone"
)

// PurgePastAvailability drops availability slots whose date has already
// passed. Run daily by the cron scheduler; harmless to run twice.
type PurgePastAvailability struct {
	repo domain.Repository
}

func NewPurgePastAvailability(repo domain.Repository) *PurgePastAvailability {
	return &PurgePastAvailability{repo: repo}
}

func (uc *PurgePastAvailability) Execute(ctx context.Context) (int64, error) {
	removed, err := uc.repo.DeleteSlotsBefore(ctx, timezone.Today())
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		log.Printf("purged %d past availability slots", removed)
	}

	return removed, nil
}
