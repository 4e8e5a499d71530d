package gpu

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"procmond/internal/domain"
)

// parseDeviceTable turns the tool's CSV output into samples, one per line.
func parseDeviceTable(out []byte) []domain.GPUSample {
	var samples []domain.GPUSample

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if len(samples) >= maxDevices {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		samples = append(samples, parseDeviceLine(line))
	}

	return samples
}

// parseDeviceLine parses one positional CSV row. Numeric tokens that fail to
// parse degrade to zero for that field; the record itself is never dropped.
func parseDeviceLine(line string) domain.GPUSample {
	fields := strings.Split(line, ",")

	sample := domain.GPUSample{
		Index:         intField(fields, 0),
		Utilization:   intField(fields, 2),
		MemoryUsedMB:  uintField(fields, 3),
		MemoryTotalMB: uintField(fields, 4),
		TemperatureC:  intField(fields, 5),
		PowerDrawW:    wattField(fields, 6),
		PowerLimitW:   wattField(fields, 7),
	}
	if len(fields) > 1 {
		sample.Name = strings.TrimSpace(fields[1])
	}

	return sample
}

func intField(fields []string, i int) int {
	if i >= len(fields) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(fields[i]))
	if err != nil {
		return 0
	}
	return v
}

func uintField(fields []string, i int) uint64 {
	if i >= len(fields) {
		return 0
	}
	v, err := strconv.ParseUint(strings.TrimSpace(fields[i]), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// wattField parses a power reading. The tool reports fractional Watts, and a
// "[N/A]" sentinel when the driver exposes no limit; the sentinel maps to
// zero instead of a parse failure.
func wattField(fields []string, i int) int {
	if i >= len(fields) {
		return 0
	}
	raw := strings.TrimSpace(fields[i])
	if strings.Contains(raw, "N/A") {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int(v)
}
