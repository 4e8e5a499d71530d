package metrics

import (
	"context"
	"time"

	"procmond/internal/domain"
	"procmond/internal/logger"
)

// Scheduler drives the sampler at a fixed cadence. Passes run sequentially
// on the calling goroutine; the only terminal state is context cancellation.
type Scheduler struct {
	interval time.Duration
	log      logger.Logger
	sample   func(context.Context) domain.Snapshot
	sink     func(domain.Snapshot)
}

func NewScheduler(interval time.Duration, log logger.Logger, sample func(context.Context) domain.Snapshot, sink func(domain.Snapshot)) *Scheduler {
	return &Scheduler{
		interval: interval,
		log:      log,
		sample:   sample,
		sink:     sink,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// First pass immediately; it seeds the CPU-time baselines.
	s.tick(ctx)

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.sample == nil || s.sink == nil {
		return
	}

	// A pass that overruns the interval is cut off rather than allowed to
	// stall the cadence indefinitely.
	timeoutCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	s.sink(s.sample(timeoutCtx))
}
