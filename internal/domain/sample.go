// Package domain
package domain

import "time"

// ProcessSample is one process as observed during a single pass. Samples are
// rebuilt from scratch every pass; only the PID and its cumulative CPU time
// survive between passes, inside the tracker.
type ProcessSample struct {
	PID        int32   `json:"pid"`
	Name       string  `json:"name"`
	State      string  `json:"state"`
	CPUPercent float64 `json:"cpu_percent"`
	MemoryKB   uint64  `json:"memory_kb"`
	Threads    int     `json:"threads"`
}

// GPUSample is one device row from the query tool. Entirely transient.
type GPUSample struct {
	Index         int    `json:"index"`
	Name          string `json:"name"`
	Utilization   int    `json:"utilization"`
	MemoryUsedMB  uint64 `json:"memory_used_mb"`
	MemoryTotalMB uint64 `json:"memory_total_mb"`
	TemperatureC  int    `json:"temperature_c"`
	PowerDrawW    int    `json:"power_draw_w"`
	PowerLimitW   int    `json:"power_limit_w"`
}

// Snapshot is the result of one full sampling pass.
type Snapshot struct {
	Processes  []ProcessSample `json:"processes"`
	GPUs       []GPUSample     `json:"gpus"`
	RecordedAt time.Time       `json:"recorded_at"`
}
