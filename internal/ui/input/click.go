package input

import "time"

// ClickRecord is a mouse press on a list row.
type ClickRecord struct {
	Line       int
	ObservedAt time.Time
}

// noClick never matches a real row, so the press after a double click always
// starts a fresh pair.
var noClick = ClickRecord{Line: -1}

// IsDouble reports whether next completes a double click started by prev.
func IsDouble(prev, next ClickRecord, threshold time.Duration) bool {
	if prev.Line < 0 || prev.Line != next.Line {
		return false
	}
	elapsed := next.ObservedAt.Sub(prev.ObservedAt)
	return elapsed >= 0 && elapsed < threshold
}

// ClickTracker remembers the previous press.
type ClickTracker struct {
	threshold time.Duration
	last      ClickRecord
}

func NewClickTracker(threshold time.Duration) *ClickTracker {
	return &ClickTracker{threshold: threshold, last: noClick}
}

// Observe records a press on line and reports whether it completed a double
// click. After a double click the tracker forgets the pair.
func (c *ClickTracker) Observe(line int, now time.Time) bool {
	next := ClickRecord{Line: line, ObservedAt: now}
	if IsDouble(c.last, next, c.threshold) {
		c.last = noClick
		return true
	}
	c.last = next
	return false
}

// Reset forgets the previous press.
func (c *ClickTracker) Reset() {
	c.last = noClick
}
