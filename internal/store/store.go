// Package store persists the application document as local JSON.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/abelbrown/nurture/internal/config"
	"github.com/abelbrown/nurture/internal/feed"
)

// ErrCorrupt is returned (wrapped) when the persisted document exists but
// cannot be parsed. Load still hands back a usable default document.
var ErrCorrupt = errors.New("store: document is malformed")

// Document is the single persisted state: the full feed list plus the
// settings. It is versionless; instants serialize as RFC 3339.
type Document struct {
	Feeds    []feed.Record   `json:"feeds"`
	Settings config.Settings `json:"settings"`
}

// Store handles JSON persistence. NOT an interface - concrete type.
// Writes are atomic: the document is written to a temp file in the same
// directory and renamed over the target, so a crash mid-save can never
// leave a half-written document behind.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a Store persisting to the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted document. A missing file yields an empty
// document with default settings and no error. A malformed file also
// yields the defaults, plus an error wrapping ErrCorrupt so the caller
// can warn: startup never fails on bad persisted state.
func (s *Store) Load() (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := Document{Settings: config.DefaultSettings()}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, fmt.Errorf("read document: %w", err)
	}

	// Unmarshal over the defaults: absent settings fields keep their
	// default values.
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{Settings: config.DefaultSettings()}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	doc.Settings.Normalize()
	return doc, nil
}

// Save writes the full document. The write completes (or fails) before
// Save returns; there is no deferred flushing.
func (s *Store) Save(doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.Feeds == nil {
		doc.Feeds = []feed.Record{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return s.writeAtomic(s.path, data)
}

// Export writes the feed list, pretty-printed, to the given path. This is
// the read-only export surface; there is no import counterpart.
func (s *Store) Export(records []feed.Record, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if records == nil {
		records = []feed.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return s.writeAtomic(path, data)
}

func (s *Store) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}
