// Package proc samples the process table: it enumerates PIDs from procfs,
// reads per-process attributes, and scores CPU utilization against the
// system-wide delta for the pass.
package proc

import (
	"context"
	"fmt"
	"runtime"

	"procmond/internal/domain"
	"procmond/internal/logger"
)

func NewCollector(capacity int, log logger.Logger) *Collector {
	if capacity < 1 {
		capacity = 1
	}
	return &Collector{
		root:     "/proc",
		capacity: capacity,
		tracker:  NewTracker(capacity),
		cores:    runtime.NumCPU,
		log:      log,
	}
}

// Collect performs the process half of one pass: refresh the system-wide
// CPU delta once, enumerate PIDs, then read and score each one. A PID that
// vanishes between enumeration and read is skipped; its tracker history is
// left alone so the next successful read still computes a true delta.
func (c *Collector) Collect(ctx context.Context) ([]domain.ProcessSample, error) {
	c.tracker.BeginPass()

	sysDelta := c.systemDelta()
	cores := c.cores()

	pids, err := c.enumerate()
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	samples := make([]domain.ProcessSample, 0, len(pids))
	for _, pid := range pids {
		name, err := c.readName(pid)
		if err != nil {
			continue
		}
		state, cpuTime, err := c.readStat(pid)
		if err != nil {
			continue
		}

		usage := c.tracker.Usage(pid, cpuTime, sysDelta, cores)
		threads, memoryKB := c.readStatus(pid)

		samples = append(samples, domain.ProcessSample{
			PID:        pid,
			Name:       name,
			State:      state,
			CPUPercent: usage,
			MemoryKB:   memoryKB,
			Threads:    threads,
		})
	}

	return samples, nil
}

// systemDelta feeds the current cumulative total into the tracker. An
// unreadable accounting source degrades to a zero delta for this pass, which
// in turn scores every process at 0%.
func (c *Collector) systemDelta() uint64 {
	total, err := c.readTotalCPUTime()
	if err != nil {
		c.log.Warn("cpu accounting unavailable", "error", err)
		return 0
	}
	return c.tracker.SystemDelta(total)
}
