// workers/sweeper.go
package workers

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"rps-frame-server/logger"
	"rps-frame-server/services"
)

// StartLobbySweeper schedules periodic disposal of matches that outlived
// the TTL without resolving. Resolved matches are deleted on resolution
// and never reach the sweeper. The returned scheduler is already
// running; callers shut it down on exit.
func StartLobbySweeper(store *services.MatchStore, ttl, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if removed := store.SweepExpired(ttl); removed > 0 {
				logger.Log.Infow("🧹 swept expired matches", "removed", removed, "remaining", store.Len())
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
