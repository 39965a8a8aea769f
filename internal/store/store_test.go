package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abelbrown/nurture/internal/config"
	"github.com/abelbrown/nurture/internal/feed"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "nurture.json"))
}

func TestLoadMissingFile(t *testing.T) {
	s := testStore(t)

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(doc.Feeds) != 0 {
		t.Errorf("expected empty feed list, got %d", len(doc.Feeds))
	}
	if doc.Settings != config.DefaultSettings() {
		t.Errorf("expected default settings, got %+v", doc.Settings)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)

	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(20 * time.Minute)
	doc := Document{
		Feeds: []feed.Record{{
			ID:     "1767945600000",
			Start:  start,
			End:    &end,
			Kind:   feed.Formula,
			Amount: 120,
			Brand:  "Hipp",
			Notes:  "fussy",
		}},
		Settings: config.Settings{
			Theme:         config.ThemeRose,
			DarkMode:      false,
			IntervalHours: 2.5,
			ViewMode:      "stopwatch",
		},
	}

	if err := s.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Feeds) != 1 {
		t.Fatalf("expected 1 feed, got %d", len(got.Feeds))
	}
	rec := got.Feeds[0]
	if rec.ID != "1767945600000" || rec.Kind != feed.Formula || rec.Amount != 120 || rec.Brand != "Hipp" || rec.Notes != "fussy" {
		t.Errorf("record fields did not round-trip: %+v", rec)
	}
	if !rec.Start.Equal(start) {
		t.Errorf("start did not round-trip: %v", rec.Start)
	}
	if rec.End == nil || !rec.End.Equal(end) {
		t.Errorf("end did not round-trip: %v", rec.End)
	}
	if got.Settings != doc.Settings {
		t.Errorf("settings did not round-trip: %+v", got.Settings)
	}
}

func TestLoadCorruptFileRecovers(t *testing.T) {
	s := testStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	doc, err := s.Load()
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if len(doc.Feeds) != 0 || doc.Settings != config.DefaultSettings() {
		t.Error("corrupt document must recover to defaults")
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	s := testStore(t)
	partial := `{"settings":{"theme":"rose"}}`
	if err := os.WriteFile(s.Path(), []byte(partial), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.Settings.Theme != config.ThemeRose {
		t.Errorf("expected rose theme, got %q", doc.Settings.Theme)
	}
	// Absent interval normalizes back to the default, not zero.
	if doc.Settings.IntervalHours != 2 {
		t.Errorf("expected default interval, got %v", doc.Settings.IntervalHours)
	}
}

func TestSaveTimesAreRFC3339(t *testing.T) {
	s := testStore(t)
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	doc := Document{
		Feeds:    []feed.Record{{ID: "1", Start: start}},
		Settings: config.DefaultSettings(),
	}
	if err := s.Save(doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "2026-03-10T08:00:00Z") {
		t.Errorf("document does not contain RFC 3339 instant:\n%s", data)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := testStore(t)
	if err := s.Save(Document{Settings: config.DefaultSettings()}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "nurture.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only nurture.json, got %v", names)
	}
}

func TestExport(t *testing.T) {
	s := testStore(t)
	path := filepath.Join(t.TempDir(), "feed_history.json")

	recs := []feed.Record{
		{ID: "2", Start: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), Kind: feed.BreastLeft},
		{ID: "1", Start: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), Kind: feed.Bottle, Amount: 90},
	}
	if err := s.Export(recs, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	var got []feed.Record
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("export is not a JSON list: %v", err)
	}
	if len(got) != 2 || got[0].ID != "2" || got[1].Amount != 90 {
		t.Errorf("export content mismatch: %+v", got)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("export should be pretty-printed")
	}
}

func TestExportEmptyListIsArray(t *testing.T) {
	s := testStore(t)
	path := filepath.Join(t.TempDir(), "feed_history.json")

	if err := s.Export(nil, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("expected empty JSON array, got %q", data)
	}
}
