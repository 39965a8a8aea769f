// Package config holds the user-adjustable settings.
package config

import (
	"time"

	"github.com/abelbrown/nurture/internal/timer"
)

// Theme is the display theme name.
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeRose    Theme = "rose"
	ThemeMint    Theme = "mint"
)

// Themes lists the selectable themes, in display order.
var Themes = []Theme{ThemeDefault, ThemeRose, ThemeMint}

// Settings is the persisted application configuration. It is loaded once
// at startup, merged over defaults, and saved immediately on every
// mutation as part of the single persisted document.
type Settings struct {
	Theme         Theme      `json:"theme"`
	DarkMode      bool       `json:"darkMode"`
	IntervalHours float64    `json:"intervalHours"`
	ViewMode      timer.Mode `json:"viewMode"`
}

// DefaultSettings returns the out-of-the-box configuration: a two hour
// reminder interval, dark default theme, countdown view.
func DefaultSettings() Settings {
	return Settings{
		Theme:         ThemeDefault,
		DarkMode:      true,
		IntervalHours: 2,
		ViewMode:      timer.Countdown,
	}
}

// Interval returns the reminder interval as a duration.
func (s Settings) Interval() time.Duration {
	return time.Duration(s.IntervalHours * float64(time.Hour))
}

// Normalize replaces unknown or out-of-range values with defaults, so a
// hand-edited or partially written document can never produce a
// non-positive interval or an unrenderable theme.
func (s *Settings) Normalize() {
	def := DefaultSettings()
	if s.IntervalHours <= 0 {
		s.IntervalHours = def.IntervalHours
	}
	switch s.Theme {
	case ThemeDefault, ThemeRose, ThemeMint:
	default:
		s.Theme = def.Theme
	}
	if !s.ViewMode.Valid() {
		s.ViewMode = def.ViewMode
	}
}
