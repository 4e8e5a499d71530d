package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"procmond/internal/domain"
)

func TestSnapshotStoreEmptyUntilFirstSet(t *testing.T) {
	s := NewSnapshotStore()

	_, _, ok := s.Latest()
	require.False(t, ok)
}

func TestSnapshotStoreKeepsOnlyLatest(t *testing.T) {
	s := NewSnapshotStore()

	s.Set(domain.Snapshot{Processes: []domain.ProcessSample{{PID: 1}}}, []byte("first"))
	s.Set(domain.Snapshot{Processes: []domain.ProcessSample{{PID: 2}}}, []byte("second"))

	snapshot, raw, ok := s.Latest()
	require.True(t, ok)
	require.Equal(t, int32(2), snapshot.Processes[0].PID)
	require.Equal(t, []byte("second"), raw)
}
