package proc

const (
	// sweepEvery is the pass cadence of the eviction sweep.
	sweepEvery = 30
	// maxIdlePasses is how long an exited process may linger in the table
	// before a sweep reclaims its slot.
	maxIdlePasses = 5
)

type cpuRecord struct {
	lastCPUTime uint64
	lastSeen    uint64
}

// Tracker converts cumulative CPU-time counters into per-interval
// utilization percentages. It holds the only state that survives between
// passes: the previous system-wide total and a bounded PID table. It does no
// IO and is not safe for concurrent use; the sampling pass owns it
// exclusively.
type Tracker struct {
	capacity  int
	lastTotal uint64
	hasTotal  bool
	pass      uint64
	records   map[int32]cpuRecord
}

func NewTracker(capacity int) *Tracker {
	if capacity < 1 {
		capacity = 1
	}
	return &Tracker{
		capacity: capacity,
		records:  make(map[int32]cpuRecord, capacity),
	}
}

// BeginPass advances the pass counter and periodically evicts records for
// PIDs that have not been observed recently, so a long-running session does
// not pin one slot per process that ever existed.
func (t *Tracker) BeginPass() {
	t.pass++
	if t.pass%sweepEvery != 0 {
		return
	}
	for pid, rec := range t.records {
		if t.pass-rec.lastSeen > maxIdlePasses {
			delete(t.records, pid)
		}
	}
}

// SystemDelta records a cumulative system-wide CPU-time reading and returns
// the delta since the previous reading. The first reading yields zero: there
// is no baseline to subtract.
func (t *Tracker) SystemDelta(total uint64) uint64 {
	if !t.hasTotal {
		t.lastTotal = total
		t.hasTotal = true
		return 0
	}
	var delta uint64
	if total >= t.lastTotal {
		delta = total - t.lastTotal
	}
	t.lastTotal = total
	return delta
}

// Usage converts a cumulative per-process CPU time into the utilization
// percentage for the interval represented by sysDelta, normalized by core
// count. A PID seen for the first time is recorded and reported as 0%; at
// capacity new PIDs go untracked and also score 0%.
func (t *Tracker) Usage(pid int32, cpuTime, sysDelta uint64, cores int) float64 {
	if cores < 1 {
		cores = 1
	}

	rec, ok := t.records[pid]
	if !ok {
		if len(t.records) >= t.capacity {
			return 0
		}
		t.records[pid] = cpuRecord{lastCPUTime: cpuTime, lastSeen: t.pass}
		return 0
	}

	prev := rec.lastCPUTime
	rec.lastCPUTime = cpuTime
	rec.lastSeen = t.pass
	t.records[pid] = rec

	if sysDelta == 0 {
		return 0
	}
	if cpuTime < prev {
		// The counter went backwards: the PID was reused by a new
		// process. Start over from the fresh baseline.
		return 0
	}

	return float64(cpuTime-prev) * 100 / (float64(sysDelta) * float64(cores))
}

// Len reports how many PIDs are currently tracked.
func (t *Tracker) Len() int {
	return len(t.records)
}
