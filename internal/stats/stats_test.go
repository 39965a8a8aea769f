package stats

import (
	"testing"
	"time"

	"github.com/abelbrown/nurture/internal/feed"
)

var base = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func logAt(offsets ...time.Duration) *feed.Log {
	l := feed.NewLog(nil)
	for _, off := range offsets {
		l.Start(base.Add(off))
	}
	return l
}

func TestAverageGap(t *testing.T) {
	// Feeds at 0h, 2h, 5h, 9h: gaps are 4h, 3h, 2h.
	l := logAt(0, 2*time.Hour, 5*time.Hour, 9*time.Hour)

	got, ok := AverageGap(l, DefaultSampleSize)
	if !ok {
		t.Fatal("expected an average")
	}
	if got != 3*time.Hour {
		t.Errorf("expected 3h average gap, got %v", got)
	}
}

func TestAverageGapSampleLimit(t *testing.T) {
	l := logAt(0, 2*time.Hour, 5*time.Hour, 9*time.Hour)

	// Only the two most recent gaps (4h, 3h) are sampled.
	got, ok := AverageGap(l, 2)
	if !ok {
		t.Fatal("expected an average")
	}
	if got != 3*time.Hour+30*time.Minute {
		t.Errorf("expected 3h30m average gap, got %v", got)
	}
}

func TestAverageGapTooFewRecords(t *testing.T) {
	if _, ok := AverageGap(feed.NewLog(nil), DefaultSampleSize); ok {
		t.Error("empty log must have no average")
	}
	if _, ok := AverageGap(logAt(0), DefaultSampleSize); ok {
		t.Error("single record must have no average")
	}
}

func TestCountSince(t *testing.T) {
	now := base.Add(30 * time.Hour)
	l := logAt(
		0,             // 30h ago, outside
		5*time.Hour,   // 25h ago, outside
		6*time.Hour,   // exactly 24h ago, counted
		20*time.Hour,  // inside
		30*time.Hour,  // right now, counted
	)

	if got := CountSince(l, now, DefaultWindow); got != 3 {
		t.Errorf("expected 3 feeds in window, got %d", got)
	}
}

func TestCountSinceEmpty(t *testing.T) {
	if got := CountSince(feed.NewLog(nil), base, DefaultWindow); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
