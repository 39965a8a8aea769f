// Package app owns the application state: the feed log, the settings,
// and their coordination with persistence and the reminder scheduler.
//
// There is exactly one State instance and no ambient globals. All
// mutations run on the UI program's single logical thread; every
// mutation persists the document and re-derives dependent state within
// the same call, so the next tick can never observe a stale value.
package app

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/abelbrown/nurture/internal/config"
	"github.com/abelbrown/nurture/internal/feed"
	"github.com/abelbrown/nurture/internal/logging"
	"github.com/abelbrown/nurture/internal/notify"
	"github.com/abelbrown/nurture/internal/stats"
	"github.com/abelbrown/nurture/internal/store"
	"github.com/abelbrown/nurture/internal/timer"
)

// Snapshot is everything the rendering layer needs for one frame. It is
// recomputed from scratch on every tick and after every mutation.
type Snapshot struct {
	Timer    timer.State
	Count24h int
	AvgGap   time.Duration
	HasAvg   bool
	// Reminder is true on the single tick where the scheduler fired.
	Reminder bool
}

// State is the single owned application state.
type State struct {
	log      *feed.Log
	settings config.Settings
	store    *store.Store
	sched    *notify.Scheduler
	notifier notify.Notifier

	// durable goes false when a save fails; in-memory state remains
	// authoritative for the session.
	durable  bool
	saveWarn rate.Sometimes
}

// New loads the persisted document and builds the application state.
// Load failures are recovered: the returned error is informational (the
// state starts from an empty log and default settings) and never nil
// state.
func New(st *store.Store, notifier notify.Notifier) (*State, error) {
	doc, err := st.Load()
	if err != nil {
		logging.Warn("load failed, starting from defaults", "err", err)
	}

	s := &State{
		log:      feed.NewLog(doc.Feeds),
		settings: doc.Settings,
		store:    st,
		sched:    notify.NewScheduler(),
		notifier: notifier,
		durable:  true,
		saveWarn: rate.Sometimes{Interval: time.Minute},
	}
	return s, err
}

// Records returns the feed log, sorted descending by start.
func (s *State) Records() []feed.Record {
	return s.log.Records()
}

// FeedCount returns the number of recorded feeds.
func (s *State) FeedCount() int {
	return s.log.Len()
}

// Settings returns the current settings.
func (s *State) Settings() config.Settings {
	return s.settings
}

// Durable reports whether the last save succeeded. When false the
// session's data may not survive a restart.
func (s *State) Durable() bool {
	return s.durable
}

// SchedulerPhase exposes the reminder latch state for display.
func (s *State) SchedulerPhase() notify.Phase {
	return s.sched.Phase()
}

// StartFeed records a new feed starting now. Always succeeds; the full
// log is persisted before returning.
func (s *State) StartFeed(now time.Time) feed.Record {
	rec := s.log.Start(now)
	s.persist()
	logging.Info("feed started", "id", rec.ID)
	return rec
}

// EditFeed applies a partial update to a record. feed.ErrNotFound and
// feed.ErrInvalidRange are returned to the caller for correction and
// leave both the log and the document untouched.
func (s *State) EditFeed(id string, p feed.Patch) error {
	if err := s.log.Edit(id, p); err != nil {
		return err
	}
	s.persist()
	logging.Info("feed edited", "id", id)
	return nil
}

// DeleteFeed removes a record.
func (s *State) DeleteFeed(id string) error {
	if err := s.log.Delete(id); err != nil {
		return err
	}
	s.persist()
	logging.Info("feed deleted", "id", id)
	return nil
}

// ClearFeeds drops the whole history.
func (s *State) ClearFeeds() {
	s.log.Clear()
	s.persist()
	logging.Info("history cleared")
}

// SetInterval updates the reminder interval in hours. Non-positive
// values are ignored.
func (s *State) SetInterval(hours float64) {
	if hours <= 0 {
		return
	}
	s.settings.IntervalHours = hours
	s.persist()
}

// SetTheme updates the display theme.
func (s *State) SetTheme(t config.Theme) {
	s.settings.Theme = t
	s.settings.Normalize()
	s.persist()
}

// SetDarkMode updates the dark-mode flag.
func (s *State) SetDarkMode(dark bool) {
	s.settings.DarkMode = dark
	s.persist()
}

// SetViewMode switches between countdown and stopwatch. A pure view
// toggle over the same reference instant, but persisted like every other
// setting.
func (s *State) SetViewMode(m timer.Mode) {
	if !m.Valid() {
		return
	}
	s.settings.ViewMode = m
	s.persist()
}

// Tick derives the display state for the query instant, runs the
// reminder scheduler on the transition, and delivers at most one
// reminder per overdue episode.
func (s *State) Tick(now time.Time) Snapshot {
	var ref *time.Time
	if latest, ok := s.log.Latest(); ok {
		start := latest.Start
		ref = &start
	}

	st := timer.Compute(ref, now, s.settings.Interval(), s.settings.ViewMode)

	snap := Snapshot{Timer: st}
	snap.Count24h = stats.CountSince(s.log, now, stats.DefaultWindow)
	snap.AvgGap, snap.HasAvg = stats.AverageGap(s.log, stats.DefaultSampleSize)

	if s.sched.Observe(st) {
		snap.Reminder = true
		if err := s.notifier.Notify("Time to feed!", notify.ReminderBody(s.settings.Interval())); err != nil {
			logging.Warn("reminder delivery failed", "err", err)
		}
	}
	return snap
}

// Export writes the pretty-printed feed list to path.
func (s *State) Export(path string) error {
	if err := s.store.Export(s.log.Records(), path); err != nil {
		return fmt.Errorf("export feeds: %w", err)
	}
	logging.Info("exported feed history", "path", path, "feeds", s.log.Len())
	return nil
}

// persist writes the full document. A failure is surfaced through
// Durable and a throttled warning; the in-memory log stays authoritative.
func (s *State) persist() {
	doc := store.Document{Feeds: s.log.Records(), Settings: s.settings}
	if err := s.store.Save(doc); err != nil {
		s.durable = false
		s.saveWarn.Do(func() {
			logging.Warn("save failed, data may not survive restart", "err", err)
		})
		return
	}
	s.durable = true
}
