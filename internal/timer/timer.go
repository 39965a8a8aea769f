// Package timer derives the current countdown/stopwatch display state
// from the most recent feed. It is a pure function of its inputs: no
// internal timers are scheduled, so the state is always consistent with
// the log no matter how it was mutated since the last query.
package timer

import (
	"fmt"
	"time"
)

// Mode selects how the reference instant is projected for display.
// Switching modes is a pure view toggle; it never alters stored data.
type Mode string

const (
	Countdown Mode = "countdown"
	Stopwatch Mode = "stopwatch"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Countdown || m == Stopwatch
}

// State is the derived timer display state. It is recomputed on every
// query and never persisted.
//
// When HasData is false no feed exists and every other field is zero;
// the display shows a "no data" sentinel. Remaining, Due, Overdue and
// OverdueFor are only meaningful in countdown mode.
type State struct {
	Mode       Mode
	HasData    bool
	Reference  time.Time // start of the most recent feed
	Elapsed    time.Duration
	Due        time.Time
	Remaining  time.Duration
	Overdue    bool
	OverdueFor time.Duration
}

// Compute derives the timer state at the query instant. ref is the start
// of the most recent feed, or nil when the log is empty.
func Compute(ref *time.Time, now time.Time, interval time.Duration, mode Mode) State {
	if ref == nil {
		return State{Mode: mode}
	}

	st := State{
		Mode:      mode,
		HasData:   true,
		Reference: *ref,
		Elapsed:   now.Sub(*ref),
	}

	if mode == Stopwatch {
		return st
	}

	st.Due = ref.Add(interval)
	remaining := st.Due.Sub(now)
	if remaining <= 0 {
		st.Overdue = true
		st.OverdueFor = -remaining
	} else {
		st.Remaining = remaining
	}
	return st
}

// FormatDuration renders a duration for the timer display: H:MM:SS when
// the magnitude is an hour or more, M:SS below that. The leading unit is
// unpadded, later units are zero-padded to two digits. Negative durations
// format by magnitude.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	total := int(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
