package meta

import "fmt"

// Trace is the append-only diagnostic log of one pass.
// It is owned by a single pass and is not safe for concurrent use.
type Trace struct {
	lines []string
}

func (t *Trace) Add(line string) {
	t.lines = append(t.lines, line)
}

func (t *Trace) Addf(format string, args ...any) {
	t.lines = append(t.lines, fmt.Sprintf(format, args...))
}

// Append copies lines produced elsewhere, e.g. by a renderer.
func (t *Trace) Append(lines ...string) {
	t.lines = append(t.lines, lines...)
}

func (t *Trace) Len() int {
	return len(t.lines)
}

// Lines returns a copy of the collected lines.
func (t *Trace) Lines() []string {
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}
