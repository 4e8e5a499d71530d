// Package gpu collects device telemetry by querying the vendor command-line
// tool for a fixed field set in headerless CSV form.
package gpu

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"procmond/internal/domain"
	"procmond/internal/logger"
)

const queryFields = "index,name,utilization.gpu,memory.used,memory.total,temperature.gpu,power.draw,power.limit"

func NewCollector(path string, timeout time.Duration, log logger.Logger) *Collector {
	return &Collector{
		path:    path,
		timeout: timeout,
		log:     log,
	}
}

// Collect invokes the query tool and parses one sample per output line.
// Machines without the tool, the driver, or any device are normal: those
// runs yield zero samples and no error. Only abnormal failures, such as a
// hung tool hitting the timeout, surface as errors.
func (c *Collector) Collect(ctx context.Context) ([]domain.GPUSample, error) {
	if _, err := exec.LookPath(c.path); err != nil {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.path,
		"--query-gpu="+queryFields,
		"--format=csv,noheader,nounits",
	)
	// Without this a killed tool whose children still hold the stdout pipe
	// would stall Output past the deadline.
	cmd.WaitDelay = time.Second

	out, err := cmd.Output()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("device query did not finish within %s", c.timeout)
	}
	if err != nil {
		// Non-zero exit usually means no driver or no devices.
		c.log.Debug("device query failed", "tool", c.path, "error", err)
		return nil, nil
	}

	return parseDeviceTable(out), nil
}
