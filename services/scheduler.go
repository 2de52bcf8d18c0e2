// services/scheduler.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartSeedScheduler runs the participation sweep every minute: each
// available player gets a row for each upcoming non-cancelled event.
func (s *ParticipationService) StartSeedScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			created, err := s.SeedUpcoming()
			if err != nil {
				log.Printf("[Scheduler] participation seed error: %v", err)
				return
			}
			if created > 0 {
				log.Printf("[Scheduler] seeded %d participation(s)", created)
			}
		}),
	)
}
