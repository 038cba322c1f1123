package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// TraceLogger mirrors pass traces to a file.
type TraceLogger interface {
	Log(pkg string, lines []string)
}

// traceLogger implements TraceLogger with thread-safe writes. Lines of one
// pass are written as one block.
type traceLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewTrace creates a new TraceLogger. If writer is nil, returns a no-op logger.
func NewTrace(w io.Writer) TraceLogger {
	return &traceLogger{w: w, now: time.Now}
}

// Log emits every line prefixed with a timestamp and the package path.
func (t *traceLogger) Log(pkg string, lines []string) {
	if len(lines) == 0 {
		return
	}
	if t.w == nil {
		return
	}

	ts := t.now().Format("2006/01/02 15:04:05")
	var sb strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&sb, "%s %s | %s\n", ts, pkg, line)
	}

	t.mu.Lock()
	_, _ = io.WriteString(t.w, sb.String())
	t.mu.Unlock()
}
