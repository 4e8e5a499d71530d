package protocol

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"procmond/internal/domain"
)

func sampleSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Processes: []domain.ProcessSample{
			{PID: 42, Name: "stress", State: "R", CPUPercent: 87.5, MemoryKB: 10240, Threads: 8},
			{PID: 1, Name: "init", State: "S", CPUPercent: 0, MemoryKB: 1024, Threads: 1},
		},
		GPUs: []domain.GPUSample{
			{Index: 0, Name: "Stub GPU", Utilization: 42, MemoryUsedMB: 2048, MemoryTotalMB: 10240, TemperatureC: 61, PowerDrawW: 187, PowerLimitW: 320},
		},
	}
}

func TestWriteSnapshot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteSnapshot(sampleSnapshot()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Equal(t, []string{
		"42|stress|R|87.50|10240|8",
		"1|init|S|0.00|1024|1",
		"END",
		"GPU_START",
		"GPU|0|Stub GPU|42|2048|10240|61|187|320",
		"GPU_END",
	}, lines)
}

func TestWriteSnapshotEmptyPass(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteSnapshot(domain.Snapshot{}))

	// The process block is emitted even when empty; the GPU block is not.
	require.Equal(t, "END\n", buf.String())
}

func TestWriteSnapshotNoGPUBlockWithoutSamples(t *testing.T) {
	snapshot := sampleSnapshot()
	snapshot.GPUs = nil

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteSnapshot(snapshot))

	require.NotContains(t, buf.String(), "GPU_START")
	require.NotContains(t, buf.String(), "GPU_END")
	require.True(t, strings.HasSuffix(buf.String(), "END\n"))
}

func TestWriteSnapshotSanitizesDelimiter(t *testing.T) {
	snapshot := domain.Snapshot{
		Processes: []domain.ProcessSample{
			{PID: 7, Name: "weird|name", State: "S", CPUPercent: 1.234, MemoryKB: 1, Threads: 1},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteSnapshot(snapshot))

	require.Contains(t, buf.String(), "7|weird_name|S|1.23|1|1\n")
}

func TestWriterIsIncremental(t *testing.T) {
	// Consecutive passes append to the same stream.
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteSnapshot(domain.Snapshot{}))
	require.NoError(t, w.WriteSnapshot(domain.Snapshot{}))

	require.Equal(t, "END\nEND\n", buf.String())
}

func TestMarshalMatchesWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteSnapshot(sampleSnapshot()))

	require.Equal(t, buf.Bytes(), Marshal(sampleSnapshot()))
}
