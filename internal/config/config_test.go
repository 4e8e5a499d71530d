package config

import (
	"strconv"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MODE", "HTTP_ADDR", "SAMPLE_INTERVAL", "PROCESS_TABLE_SIZE",
		"GPU_TOOL_PATH", "GPU_TOOL_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	require.Equal(t, ModeStream, cfg.Mode)
	require.Equal(t, 2*time.Second, cfg.Interval)
	require.Equal(t, 1024, cfg.ProcessTableSize)
	require.Equal(t, "nvidia-smi", cfg.GPUToolPath)
	require.Equal(t, 2*time.Second, cfg.GPUToolTimeout)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODE", "serve")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("SAMPLE_INTERVAL", "500ms")
	t.Setenv("PROCESS_TABLE_SIZE", "64")
	t.Setenv("GPU_TOOL_PATH", "/opt/bin/nvidia-smi")
	t.Setenv("GPU_TOOL_TIMEOUT", "5s")

	cfg := Load()
	require.Equal(t, ModeServe, cfg.Mode)
	require.Equal(t, ":9000", cfg.Address)
	require.Equal(t, 500*time.Millisecond, cfg.Interval)
	require.Equal(t, 64, cfg.ProcessTableSize)
	require.Equal(t, "/opt/bin/nvidia-smi", cfg.GPUToolPath)
	require.Equal(t, 5*time.Second, cfg.GPUToolTimeout)
}

func TestLoadUnknownModeFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODE", "daemonize")

	require.Equal(t, ModeStream, Load().Mode)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("non-positive table sizes fall back to default", prop.ForAll(
		func(size int) bool {
			clearEnv(t)
			t.Setenv("PROCESS_TABLE_SIZE", strconv.Itoa(size))
			return Load().ProcessTableSize == 1024
		},
		gen.IntRange(-10_000, 0),
	))

	properties.Property("unparsable intervals fall back to default", prop.ForAll(
		func(raw string) bool {
			clearEnv(t)
			t.Setenv("SAMPLE_INTERVAL", raw)
			return Load().Interval == 2*time.Second
		},
		gen.RegexMatch("[a-z]{1,8}"),
	))

	properties.Property("negative intervals fall back to default", prop.ForAll(
		func(seconds int) bool {
			clearEnv(t)
			t.Setenv("SAMPLE_INTERVAL", strconv.Itoa(seconds)+"s")
			return Load().Interval == 2*time.Second
		},
		gen.IntRange(-1000, 0),
	))

	properties.TestingRun(t)
}
