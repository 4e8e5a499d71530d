package gpu

import (
	"time"

	"procmond/internal/logger"
)

// maxDevices caps how many rows of tool output one pass accepts.
const maxDevices = 8

type Collector struct {
	path    string
	timeout time.Duration
	log     logger.Logger
}
