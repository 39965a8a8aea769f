// Package stats computes rolling statistics over the feed log.
package stats

import (
	"time"

	"github.com/abelbrown/nurture/internal/feed"
)

// DefaultWindow is the standard rolling-count window.
const DefaultWindow = 24 * time.Hour

// DefaultSampleSize is the standard number of gaps averaged by AverageGap.
const DefaultSampleSize = 10

// CountSince counts records whose start instant lies inside the closed
// window [now-window, now]. A record exactly window old is counted.
func CountSince(log *feed.Log, now time.Time, window time.Duration) int {
	n := 0
	for range log.Between(now.Add(-window), now) {
		n++
	}
	return n
}

// AverageGap returns the mean of the most recent min(sampleSize, n-1)
// consecutive start-to-start gaps, taken over the descending-sorted log.
// The second return is false when fewer than two records exist.
func AverageGap(log *feed.Log, sampleSize int) (time.Duration, bool) {
	recs := log.Records()
	if len(recs) < 2 || sampleSize < 1 {
		return 0, false
	}

	pairs := len(recs) - 1
	if sampleSize < pairs {
		pairs = sampleSize
	}

	var total time.Duration
	for i := 0; i < pairs; i++ {
		total += recs[i].Start.Sub(recs[i+1].Start)
	}
	return total / time.Duration(pairs), true
}
