// Package metrics
package metrics

import (
	"context"
	"sort"
	"time"

	"procmond/internal/domain"
	"procmond/internal/logger"
)

type ProcessCollector interface {
	Collect(ctx context.Context) ([]domain.ProcessSample, error)
}

type GPUCollector interface {
	Collect(ctx context.Context) ([]domain.GPUSample, error)
}

// Sampler orchestrates one full pass: process sweep, sort, GPU sweep.
type Sampler struct {
	proc ProcessCollector
	gpu  GPUCollector
	log  logger.Logger
}

func NewSampler(proc ProcessCollector, gpu GPUCollector, log logger.Logger) *Sampler {
	return &Sampler{
		proc: proc,
		gpu:  gpu,
		log:  log,
	}
}

// Collect runs one pass. The two halves never poison each other: an
// unreadable process registry still yields a (possibly empty) process block,
// and GPU trouble yields a pass without a GPU block.
func (s *Sampler) Collect(ctx context.Context) domain.Snapshot {
	snapshot := domain.Snapshot{RecordedAt: time.Now().UTC()}

	procs, err := s.proc.Collect(ctx)
	if err != nil {
		s.log.Error("collector", "name", "proc", "error", err)
	}

	// Busiest first. The sort is stable with no secondary key, so equal
	// readings keep their enumeration order and idle processes do not
	// churn between passes.
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].CPUPercent > procs[j].CPUPercent
	})
	snapshot.Processes = procs

	gpus, err := s.gpu.Collect(ctx)
	if err != nil {
		s.log.Error("collector", "name", "gpu", "error", err)
	}
	snapshot.GPUs = gpus

	return snapshot
}
