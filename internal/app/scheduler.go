package app

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
)

const requeueRunTimeout = 30 * time.Second

type staleRequeuer interface {
	RequeueStale(ctx context.Context) (int, error)
}

// newRequeueScheduler runs the stale-claim sweep every interval. A slow
// sweep delays the next one instead of overlapping it.
func newRequeueScheduler(requeuer staleRequeuer, interval time.Duration, logger *logging.Logger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), requeueRunTimeout)
			defer cancel()

			if _, err := requeuer.RequeueStale(ctx); err != nil {
				logger.ErrorContext(ctx, "requeue stale matches failed", "error", err)
			}
		}),
		gocron.WithName("match-requeue"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}

	return s, nil
}
