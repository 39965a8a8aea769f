package notify

import (
	"testing"
	"time"

	"github.com/abelbrown/nurture/internal/timer"
)

var base = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

const interval = 2 * time.Hour

func observe(s *Scheduler, ref time.Time, now time.Time) bool {
	return s.Observe(timer.Compute(&ref, now, interval, timer.Countdown))
}

func TestFiresExactlyOncePerEpisode(t *testing.T) {
	s := NewScheduler()

	// Pending observation arms the latch.
	if observe(s, base, base.Add(time.Hour)) {
		t.Fatal("pending observation must not fire")
	}
	if s.Phase() != Armed {
		t.Fatalf("expected armed, got %v", s.Phase())
	}

	// First overdue observation fires.
	if !observe(s, base, base.Add(interval+time.Second)) {
		t.Fatal("first overdue observation must fire")
	}

	// Every later tick of the same episode stays silent.
	for i := 1; i <= 100; i++ {
		now := base.Add(interval + time.Duration(i)*time.Minute)
		if observe(s, base, now) {
			t.Fatalf("fired again %d minutes into the episode", i)
		}
	}
	if s.Phase() != Fired {
		t.Errorf("expected fired, got %v", s.Phase())
	}
}

func TestNewFeedRearms(t *testing.T) {
	s := NewScheduler()
	observe(s, base, base.Add(time.Hour))
	observe(s, base, base.Add(interval+time.Minute)) // fires

	// A new feed starts a new epoch; the latch re-arms and fires again
	// when that epoch goes overdue.
	ref := base.Add(3 * time.Hour)
	if observe(s, ref, ref.Add(time.Hour)) {
		t.Fatal("pending observation of new epoch must not fire")
	}
	if s.Phase() != Armed {
		t.Fatalf("expected armed after new epoch, got %v", s.Phase())
	}
	if !observe(s, ref, ref.Add(interval+time.Minute)) {
		t.Error("new epoch going overdue must fire")
	}
}

func TestEpochChangeWhileFiredRearmsEvenIfOverdue(t *testing.T) {
	s := NewScheduler()
	observe(s, base, base.Add(time.Hour))
	observe(s, base, base.Add(interval+time.Minute)) // fires

	// An edit moves the latest feed to an instant that is itself already
	// overdue. The epoch change resets the fired latch, so this counts as
	// a fresh episode.
	ref := base.Add(30 * time.Minute)
	if !observe(s, ref, base.Add(interval+2*time.Hour)) {
		t.Error("overdue observation of a changed epoch must fire")
	}
}

func TestColdStartOverdueStaysIdle(t *testing.T) {
	s := NewScheduler()

	// First ever observation is already overdue: never fire a stale
	// reminder, and stay idle for the whole episode.
	for i := 0; i < 10; i++ {
		now := base.Add(interval + time.Duration(i+1)*time.Minute)
		if observe(s, base, now) {
			t.Fatal("cold start into an overdue episode must not fire")
		}
	}
	if s.Phase() != Idle {
		t.Errorf("expected idle, got %v", s.Phase())
	}

	// The next feed behaves normally.
	ref := base.Add(4 * time.Hour)
	observe(s, ref, ref.Add(time.Minute))
	if !observe(s, ref, ref.Add(interval+time.Minute)) {
		t.Error("episode after cold start must fire normally")
	}
}

func TestEmptyLogForcesIdle(t *testing.T) {
	s := NewScheduler()
	observe(s, base, base.Add(time.Hour))
	observe(s, base, base.Add(interval+time.Minute)) // fires

	// Deleting the only feed removes the reference instant.
	if s.Observe(timer.Compute(nil, base.Add(3*time.Hour), interval, timer.Countdown)) {
		t.Error("no-data observation must not fire")
	}
	if s.Phase() != Idle {
		t.Errorf("expected idle, got %v", s.Phase())
	}
}

func TestStopwatchNeverArms(t *testing.T) {
	s := NewScheduler()

	ref := base
	for i := 0; i < 5; i++ {
		now := base.Add(time.Duration(i) * time.Hour)
		if s.Observe(timer.Compute(&ref, now, interval, timer.Stopwatch)) {
			t.Fatal("stopwatch observation must not fire")
		}
	}
	if s.Phase() != Idle {
		t.Errorf("expected idle under stopwatch mode, got %v", s.Phase())
	}
}

func TestModeRoundTripSuppressesStaleEpisode(t *testing.T) {
	s := NewScheduler()
	observe(s, base, base.Add(time.Hour)) // armed

	// Switching to stopwatch drops the epoch. Switching back while the
	// countdown is already overdue looks like a cold start and stays
	// silent.
	ref := base
	s.Observe(timer.Compute(&ref, base.Add(90*time.Minute), interval, timer.Stopwatch))
	if observe(s, base, base.Add(interval+time.Minute)) {
		t.Error("episode entered overdue while untracked must not fire")
	}
}
