package proc

import (
	"os"
	"strconv"
)

// enumerate lists the numeric entries of the procfs root, truncated at the
// table capacity. Under-reporting beats failing: a box with more processes
// than slots still produces a pass.
func (c *Collector) enumerate() ([]int32, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return nil, err
	}

	pids := make([]int32, 0, c.capacity)
	for _, e := range entries {
		if len(pids) >= c.capacity {
			break
		}
		if !e.IsDir() {
			continue
		}
		pid, err := strconv.ParseInt(e.Name(), 10, 32)
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, int32(pid))
	}

	return pids, nil
}
