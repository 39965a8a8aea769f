package config

import (
	"testing"
	"time"

	"github.com/abelbrown/nurture/internal/timer"
)

func TestDefaultInterval(t *testing.T) {
	if got := DefaultSettings().Interval(); got != 2*time.Hour {
		t.Errorf("expected 2h default interval, got %v", got)
	}
}

func TestIntervalFractionalHours(t *testing.T) {
	s := Settings{IntervalHours: 2.5}
	if got := s.Interval(); got != 2*time.Hour+30*time.Minute {
		t.Errorf("expected 2h30m, got %v", got)
	}
}

func TestNormalize(t *testing.T) {
	s := Settings{
		Theme:         "neon",
		IntervalHours: -1,
		ViewMode:      "sundial",
	}
	s.Normalize()

	if s.Theme != ThemeDefault {
		t.Errorf("unknown theme must normalize to default, got %q", s.Theme)
	}
	if s.IntervalHours != 2 {
		t.Errorf("non-positive interval must normalize to default, got %v", s.IntervalHours)
	}
	if s.ViewMode != timer.Countdown {
		t.Errorf("unknown view mode must normalize to countdown, got %q", s.ViewMode)
	}
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	s := Settings{
		Theme:         ThemeMint,
		DarkMode:      false,
		IntervalHours: 3,
		ViewMode:      timer.Stopwatch,
	}
	before := s
	s.Normalize()
	if s != before {
		t.Errorf("valid settings must be untouched: %+v", s)
	}
}
