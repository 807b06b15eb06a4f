package domain

import "time"

// InBlackout reports whether hour falls inside the [start, end) blackout
// window. When start > end the window wraps midnight. Equal bounds mean no
// blackout at all, never a full-day block.
func InBlackout(start, end, hour int) bool {
	if start == end {
		return false
	}
	if start < end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

// IntervalElapsed reports whether enough time has passed since the last
// successful run. A nil lastSuccess always permits the run. Jitter lowers
// the effective threshold so runs can fire slightly early; boundary equality
// permits the run.
func IntervalElapsed(lastSuccess *time.Time, now time.Time, intervalMinutes, jitterMinutes int) bool {
	if lastSuccess == nil {
		return true
	}
	threshold := time.Duration(intervalMinutes-jitterMinutes) * time.Minute
	if threshold < 0 {
		threshold = 0
	}
	return now.Sub(*lastSuccess) >= threshold
}
