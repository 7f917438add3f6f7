package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/chentesbarber/booking-api/internal/timezone"
	ucbooking "github.com/chentesbarber/booking-api/internal/usecase/booking"
)

// Start schedules the nightly cleanup of past availability slots and
// runs it once immediately so a restarted server catches up.
func Start(purge *ucbooking.PurgePastAvailability) *cron.Cron {
	run := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := purge.Execute(ctx); err != nil {
			log.Printf("availability purge failed: %v", err)
		}
	}

	go run()

	c := cron.New(cron.WithLocation(timezone.Location()))
	if _, err := c.AddFunc("15 3 * * *", run); err != nil {
		log.Printf("failed to schedule availability purge: %v", err)
	}
	c.Start()

	return c
}
