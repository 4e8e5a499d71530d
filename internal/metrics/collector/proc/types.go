package proc

import (
	"procmond/internal/logger"
)

type Collector struct {
	root     string
	capacity int
	tracker  *Tracker
	cores    func() int
	log      logger.Logger
}
