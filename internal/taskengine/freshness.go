package taskengine

import "time"

// farFuture and farPast stand in for the "max"/"min" timestamp sentinels
// named in §4.6 step 2's leaf-task rule, without needing an Option type
// threaded through every comparison.
var (
	farFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
	farPast   = time.Time{}
)

// DataDiffer reports whether a data-dependency pointer's value changed
// between the previous and current project summary (§3, §4.6 step 2).
type DataDiffer func(pointer string) bool

// leafTimestamp computes a leaf task's last_modified per §4.6 step 2: a
// data dependency resolves via the differ; a target naming an existing
// file uses its mtime; anything else is min (never triggers a rebuild).
func leafTimestamp(target string, differ DataDiffer, statFile func(string) (time.Time, bool)) time.Time {
	if isDataDependency(target) {
		if differ != nil && differ(target) {
			return farFuture
		}
		return farPast
	}
	if statFile != nil {
		if mtime, ok := statFile(target); ok {
			return mtime
		}
	}
	return farPast
}

// maxOf returns the latest of a set of timestamps, or the zero value for
// an empty set.
func maxOf(times []time.Time) time.Time {
	var max time.Time
	for _, t := range times {
		if t.After(max) {
			max = t
		}
	}
	return max
}
