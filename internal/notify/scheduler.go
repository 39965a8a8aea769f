// Package notify decides when a feed reminder should be delivered.
package notify

import (
	"time"

	"github.com/abelbrown/nurture/internal/timer"
)

// Phase is the scheduler's latch state.
type Phase int

const (
	// Idle: no countdown epoch is being tracked.
	Idle Phase = iota
	// Armed: a countdown is pending; the first overdue observation fires.
	Armed
	// Fired: the reminder for the current epoch has been delivered.
	Fired
)

func (p Phase) String() string {
	switch p {
	case Armed:
		return "armed"
	case Fired:
		return "fired"
	default:
		return "idle"
	}
}

// Scheduler emits at most one reminder per overdue episode. It observes
// the derived timer state on every tick and tracks epochs by reference
// instant: a new feed, or an edit that changes which record is most
// recent, starts a new epoch and resets the latch.
//
// Stopwatch mode has no overdue concept, so stopwatch observations force
// the scheduler idle and never arm it. A run that begins with the last
// feed already overdue stays idle for that epoch: the latch only arms on
// a pending observation, so cold starts never fire a stale reminder.
type Scheduler struct {
	phase Phase
	epoch time.Time // reference instant of the tracked epoch
}

// NewScheduler returns an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Phase returns the current latch state.
func (s *Scheduler) Phase() Phase {
	return s.phase
}

// Observe feeds one derived timer state to the scheduler and reports
// whether a reminder must be delivered now. It returns true exactly once
// per overdue episode: on the first observation where an armed countdown
// has gone overdue.
func (s *Scheduler) Observe(st timer.State) bool {
	if !st.HasData || st.Mode != timer.Countdown {
		s.phase = Idle
		s.epoch = time.Time{}
		return false
	}

	if s.epoch.IsZero() || !st.Reference.Equal(s.epoch) {
		// New epoch: reset the latch. An epoch first seen overdue only
		// arms if a previous epoch was being tracked (the reference
		// change is what resets a fired latch); from a cold start it
		// stays idle.
		wasTracking := s.phase != Idle
		s.epoch = st.Reference
		switch {
		case !st.Overdue:
			s.phase = Armed
		case wasTracking:
			s.phase = Armed
		default:
			s.phase = Idle
		}
	}

	switch s.phase {
	case Idle:
		if !st.Overdue {
			s.phase = Armed
		}
	case Armed:
		if st.Overdue {
			s.phase = Fired
			return true
		}
	}
	return false
}
