package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartExpiryScheduler runs ExpireStale every interval. Runs never overlap.
func StartExpiryScheduler(reservations *ReservationService, every time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), every)
			defer cancel()
			if _, err := reservations.ExpireStale(ctx); err != nil {
				log.Printf("❌ expire pending reservations: %v", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("expire-pending-reservations"),
	)
	if err != nil {
		s.Shutdown()
		return nil, err
	}

	s.Start()
	log.Printf("⏱️  pending reservation expiry every %s (ttl %s)", every, reservations.PendingTTL)
	return s, nil
}
