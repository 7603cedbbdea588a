package engine

import "time"

const day = 24 * time.Hour

// IsStale reports whether a head commit made at lastCommit falls before the
// staleness cutoff. With staleDays == 0 the cutoff is now itself, so any
// commit strictly older than now is stale.
func IsStale(lastCommit, now time.Time, staleDays int) bool {
	cutoff := now.Add(-time.Duration(staleDays) * day)
	return lastCommit.Before(cutoff)
}

// DaysSince returns the whole days elapsed between lastCommit and now,
// floor-divided. Diagnostics only.
func DaysSince(lastCommit, now time.Time) int {
	return int(now.Sub(lastCommit) / day)
}
