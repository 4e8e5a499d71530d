// Package config
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Mode      string
	Address   string
	Interval  time.Duration
	LogLevel  string
	LogFormat string

	ProcessTableSize int
	GPUToolPath      string
	GPUToolTimeout   time.Duration
}

const (
	ModeStream   = "stream"
	ModeServe    = "serve"
	ModeSnapshot = "snapshot"
)

const (
	defaultInterval       = 2 * time.Second
	defaultTableSize      = 1024
	defaultGPUToolPath    = "nvidia-smi"
	defaultGPUToolTimeout = 2 * time.Second
)

func Load() *Config {
	godotenv.Load()

	mode := os.Getenv("MODE")
	switch mode {
	case ModeStream, ModeServe, ModeSnapshot:
	default:
		mode = ModeStream
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	interval := defaultInterval
	if raw := os.Getenv("SAMPLE_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	tableSize := defaultTableSize
	if raw := os.Getenv("PROCESS_TABLE_SIZE"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			tableSize = parsed
		}
	}

	gpuPath := os.Getenv("GPU_TOOL_PATH")
	if gpuPath == "" {
		gpuPath = defaultGPUToolPath
	}

	gpuTimeout := defaultGPUToolTimeout
	if raw := os.Getenv("GPU_TOOL_TIMEOUT"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			gpuTimeout = parsed
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return &Config{
		Mode:      mode,
		Address:   addr,
		Interval:  interval,
		LogLevel:  logLevel,
		LogFormat: logFormat,

		ProcessTableSize: tableSize,
		GPUToolPath:      gpuPath,
		GPUToolTimeout:   gpuTimeout,
	}
}
