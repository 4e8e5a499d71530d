// Package protocol implements the line-oriented sample stream: a block of
// pipe-delimited process rows terminated by END, optionally followed by a
// GPU block bounded by GPU_START and GPU_END.
package protocol

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"procmond/internal/domain"
)

const (
	endMarker      = "END"
	gpuStartMarker = "GPU_START"
	gpuEndMarker   = "GPU_END"
)

type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteSnapshot emits one pass. The process block (always present, even
// empty) is flushed before the GPU block is started, so an incremental
// reader observes a complete syntactic unit before the producer blocks on
// its next sleep. A pass with zero GPU samples emits no GPU block at all.
func (w *Writer) WriteSnapshot(snapshot domain.Snapshot) error {
	for _, p := range snapshot.Processes {
		if err := writeProcess(w.w, p); err != nil {
			return err
		}
	}
	if _, err := w.w.WriteString(endMarker + "\n"); err != nil {
		return err
	}
	if err := w.w.Flush(); err != nil {
		return err
	}

	if len(snapshot.GPUs) == 0 {
		return nil
	}

	if _, err := w.w.WriteString(gpuStartMarker + "\n"); err != nil {
		return err
	}
	for _, g := range snapshot.GPUs {
		if err := writeGPU(w.w, g); err != nil {
			return err
		}
	}
	if _, err := w.w.WriteString(gpuEndMarker + "\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

func writeProcess(w io.Writer, p domain.ProcessSample) error {
	_, err := fmt.Fprintf(w, "%d|%s|%s|%.2f|%d|%d\n",
		p.PID, sanitizeName(p.Name), p.State, p.CPUPercent, p.MemoryKB, p.Threads)
	return err
}

func writeGPU(w io.Writer, g domain.GPUSample) error {
	_, err := fmt.Fprintf(w, "GPU|%d|%s|%d|%d|%d|%d|%d|%d\n",
		g.Index, sanitizeName(g.Name), g.Utilization, g.MemoryUsedMB, g.MemoryTotalMB,
		g.TemperatureC, g.PowerDrawW, g.PowerLimitW)
	return err
}

// sanitizeName replaces the field delimiter inside names. The protocol
// defines no escaping, so an embedded pipe would shift every later field.
func sanitizeName(name string) string {
	return strings.ReplaceAll(name, "|", "_")
}

// Marshal renders one pass to a byte slice, for transports that frame whole
// passes instead of tailing a stream.
func Marshal(snapshot domain.Snapshot) []byte {
	var buf bytes.Buffer
	// Writing to a bytes.Buffer cannot fail.
	_ = NewWriter(&buf).WriteSnapshot(snapshot)
	return buf.Bytes()
}
