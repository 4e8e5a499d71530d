package proc

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const maxNameLen = 255

var errInvalidStat = errors.New("malformed stat line")

func (c *Collector) readName(pid int32) (string, error) {
	data, err := os.ReadFile(filepath.Join(c.root, strconv.Itoa(int(pid)), "comm"))
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", errors.New("empty comm")
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return name, nil
}

func (c *Collector) readStat(pid int32) (string, uint64, error) {
	data, err := os.ReadFile(filepath.Join(c.root, strconv.Itoa(int(pid)), "stat"))
	if err != nil {
		return "", 0, err
	}
	return parseStat(string(data))
}

// parseStat extracts the state character and cumulative utime+stime from a
// stat line. Positions are counted from the last ')' so a command name
// containing spaces or parentheses cannot shift the fields.
func parseStat(line string) (string, uint64, error) {
	end := strings.LastIndexByte(line, ')')
	if end < 0 || end+1 >= len(line) {
		return "", 0, errInvalidStat
	}

	// After the comm field: state ppid pgrp session tty_nr tpgid flags
	// minflt cminflt majflt cmajflt utime stime ...
	fields := strings.Fields(line[end+1:])
	if len(fields) < 13 {
		return "", 0, errInvalidStat
	}

	state := fields[0]
	utime, err := strconv.ParseUint(fields[11], 10, 64)
	if err != nil {
		return "", 0, errInvalidStat
	}
	stime, err := strconv.ParseUint(fields[12], 10, 64)
	if err != nil {
		return "", 0, errInvalidStat
	}

	return state, utime + stime, nil
}

// readStatus scans the status listing for the thread count and resident set
// size (kB). Both are non-critical: any failure degrades to zero instead of
// discarding the sample.
func (c *Collector) readStatus(pid int32) (threads int, memoryKB uint64) {
	file, err := os.Open(filepath.Join(c.root, strconv.Itoa(int(pid)), "status"))
	if err != nil {
		return 0, 0
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "Threads:"):
			if fields := strings.Fields(line); len(fields) >= 2 {
				threads, _ = strconv.Atoi(fields[1])
			}
		case strings.HasPrefix(line, "VmRSS:"):
			if fields := strings.Fields(line); len(fields) >= 2 {
				memoryKB, _ = strconv.ParseUint(fields[1], 10, 64)
			}
		}
	}

	return threads, memoryKB
}

// readTotalCPUTime sums every field of the aggregate cpu line of
// <root>/stat: the cumulative CPU time spent in all accounting buckets
// across all cores.
func (c *Collector) readTotalCPUTime() (uint64, error) {
	file, err := os.Open(filepath.Join(c.root, "stat"))
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		var total uint64
		for _, field := range strings.Fields(line)[1:] {
			v, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				continue
			}
			total += v
		}
		return total, nil
	}

	return 0, errors.New("no aggregate cpu line")
}
