// Package feed owns the log of feeding records.
package feed

import (
	"errors"
	"iter"
	"sort"
	"strconv"
	"time"
)

// Kind identifies how a feed was given.
type Kind string

const (
	BreastLeft  Kind = "breast-l"
	BreastRight Kind = "breast-r"
	Bottle      Kind = "bottle"
	Formula     Kind = "formula"
)

// DefaultKind is assigned to records created by Start.
const DefaultKind = BreastLeft

// Kinds lists every valid kind, in display order.
var Kinds = []Kind{BreastLeft, BreastRight, Bottle, Formula}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case BreastLeft, BreastRight, Bottle, Formula:
		return true
	}
	return false
}

// HasAmount reports whether records of this kind carry a quantity.
// Only bottle and formula feeds are measured.
func (k Kind) HasAmount() bool {
	return k == Bottle || k == Formula
}

var (
	// ErrNotFound is returned when an operation references a record id
	// that is not in the log.
	ErrNotFound = errors.New("feed: record not found")

	// ErrInvalidRange is returned when an edit would leave a record with
	// an end instant before its start instant.
	ErrInvalidRange = errors.New("feed: end precedes start")
)

// Record is a single feeding event. End is nil while the feed is a point
// event (no recorded duration). Amount is millilitres and only meaningful
// for bottle and formula feeds.
type Record struct {
	ID     string     `json:"id"`
	Start  time.Time  `json:"start"`
	End    *time.Time `json:"end,omitempty"`
	Kind   Kind       `json:"type"`
	Amount float64    `json:"amount,omitempty"`
	Brand  string     `json:"brand,omitempty"`
	Notes  string     `json:"notes,omitempty"`
}

// Duration returns the recorded feed duration, or false if the record has
// no end instant.
func (r Record) Duration() (time.Duration, bool) {
	if r.End == nil {
		return 0, false
	}
	return r.End.Sub(r.Start), true
}

// Patch is a partial update for Edit. Nil fields are left untouched.
// ClearEnd removes the end instant regardless of End.
type Patch struct {
	Start    *time.Time
	End      *time.Time
	ClearEnd bool
	Kind     *Kind
	Amount   *float64
	Brand    *string
	Notes    *string
}

// Log is the ordered sequence of feeding records, sorted descending by
// start instant. Ids are unique and monotonically assigned. Log is not
// safe for concurrent use; all mutations are serialized by the owner.
type Log struct {
	records []Record
	lastID  int64
}

// NewLog builds a log from previously persisted records. The records are
// re-sorted and the id counter resumes past the highest id seen, so new
// records never collide with restored ones.
func NewLog(records []Record) *Log {
	l := &Log{records: append([]Record(nil), records...)}
	for _, r := range l.records {
		if n, err := strconv.ParseInt(r.ID, 10, 64); err == nil && n > l.lastID {
			l.lastID = n
		}
	}
	l.sortDesc()
	return l
}

// Start records a new feed beginning at now and returns it.
// The new record has no end instant and the default kind.
func (l *Log) Start(now time.Time) Record {
	rec := Record{
		ID:    l.nextID(now),
		Start: now,
		Kind:  DefaultKind,
	}
	l.records = append(l.records, rec)
	l.sortDesc()
	return rec
}

// Edit applies a partial update to the record with the given id.
// Returns ErrNotFound for an unknown id and ErrInvalidRange when the
// patched record would end before it starts. On error the log is
// unchanged. The log is re-sorted afterwards, so an edit can promote a
// record to (or demote it from) the most recent position.
func (l *Log) Edit(id string, p Patch) error {
	idx := l.index(id)
	if idx < 0 {
		return ErrNotFound
	}

	rec := l.records[idx]
	if p.Start != nil {
		rec.Start = *p.Start
	}
	if p.ClearEnd {
		rec.End = nil
	} else if p.End != nil {
		end := *p.End
		rec.End = &end
	}
	if p.Kind != nil {
		rec.Kind = *p.Kind
	}
	if p.Amount != nil {
		rec.Amount = *p.Amount
	}
	if p.Brand != nil {
		rec.Brand = *p.Brand
	}
	if p.Notes != nil {
		rec.Notes = *p.Notes
	}

	if rec.End != nil && rec.End.Before(rec.Start) {
		return ErrInvalidRange
	}

	l.records[idx] = rec
	l.sortDesc()
	return nil
}

// Delete removes the record with the given id.
func (l *Log) Delete(id string) error {
	idx := l.index(id)
	if idx < 0 {
		return ErrNotFound
	}
	l.records = append(l.records[:idx], l.records[idx+1:]...)
	return nil
}

// Clear drops every record.
func (l *Log) Clear() {
	l.records = nil
}

// Latest returns the record with the maximum start instant. It is always
// derived from the current log contents, never cached, so it reflects
// edits that reorder records.
func (l *Log) Latest() (Record, bool) {
	if len(l.records) == 0 {
		return Record{}, false
	}
	return l.records[0], true
}

// Between yields records whose start instant lies inside the closed
// window [start, end]. The sequence is lazy, restartable, and finite.
func (l *Log) Between(start, end time.Time) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range l.records {
			if r.Start.Before(start) || r.Start.After(end) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}

// Records returns a snapshot of the log, sorted descending by start.
func (l *Log) Records() []Record {
	return append([]Record(nil), l.records...)
}

// Len returns the number of records.
func (l *Log) Len() int {
	return len(l.records)
}

// nextID derives an id from the creation instant. Ids must stay unique
// and monotonic even when two records are created within the same
// millisecond, so the counter bumps past the last issued id on collision.
func (l *Log) nextID(now time.Time) string {
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return strconv.FormatInt(id, 10)
}

func (l *Log) index(id string) int {
	for i, r := range l.records {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// sortDesc re-establishes the descending-by-start order. Ties break on id
// so the order is deterministic.
func (l *Log) sortDesc() {
	sort.SliceStable(l.records, func(i, j int) bool {
		if l.records[i].Start.Equal(l.records[j].Start) {
			return l.records[i].ID > l.records[j].ID
		}
		return l.records[i].Start.After(l.records[j].Start)
	})
}
