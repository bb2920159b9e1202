// Package observ carries the lightweight instrumentation behind --timings.
package observ

import (
	"fmt"
	"strings"
	"time"
)

type phase struct {
	name  string
	start time.Time
	dur   time.Duration
}

// Timer accumulates named phase durations in start order. The zero value is
// not usable; call NewTimer.
type Timer struct {
	phases []phase
}

func NewTimer() *Timer { return &Timer{phases: make([]phase, 0, 6)} }

// Begin opens a phase and returns a handle for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, phase{name: name, start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase opened by Begin. Out-of-range handles are ignored so
// callers can pass -1 when timing is disabled.
func (t *Timer) End(idx int) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	t.phases[idx].dur = time.Since(t.phases[idx].start)
}

// Summary renders one line per phase plus a total, in milliseconds.
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	var total time.Duration
	for _, p := range t.phases {
		total += p.dur
		fmt.Fprintf(&b, "  %-10s %8.3f ms\n", p.name, millis(p.dur))
	}
	fmt.Fprintf(&b, "  %-10s %8.3f ms\n", "total", millis(total))
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
