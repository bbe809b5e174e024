package input

import (
	"testing"
	"time"
)

func TestIsDouble(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	threshold := 500 * time.Millisecond

	tests := []struct {
		name string
		prev ClickRecord
		next ClickRecord
		want bool
	}{
		{"same line inside threshold", ClickRecord{3, base}, ClickRecord{3, base.Add(100 * time.Millisecond)}, true},
		{"same instant", ClickRecord{3, base}, ClickRecord{3, base}, true},
		{"one below threshold", ClickRecord{3, base}, ClickRecord{3, base.Add(threshold - time.Millisecond)}, true},
		{"exactly at threshold", ClickRecord{3, base}, ClickRecord{3, base.Add(threshold)}, false},
		{"too slow", ClickRecord{3, base}, ClickRecord{3, base.Add(time.Second)}, false},
		{"different line", ClickRecord{3, base}, ClickRecord{4, base.Add(10 * time.Millisecond)}, false},
		{"sentinel", noClick, ClickRecord{-1, base}, false},
		{"clock went backwards", ClickRecord{3, base}, ClickRecord{3, base.Add(-time.Millisecond)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDouble(tt.prev, tt.next, threshold); got != tt.want {
				t.Fatalf("IsDouble = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClickTrackerResetsAfterDouble(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewClickTracker(500 * time.Millisecond)

	if tracker.Observe(2, base) {
		t.Fatalf("first click must not be a double click")
	}
	if !tracker.Observe(2, base.Add(100*time.Millisecond)) {
		t.Fatalf("second click should be a double click")
	}
	// A third quick click starts a new pair instead of firing again.
	if tracker.Observe(2, base.Add(200*time.Millisecond)) {
		t.Fatalf("third click must not be a double click")
	}
	if !tracker.Observe(2, base.Add(300*time.Millisecond)) {
		t.Fatalf("fourth click should complete a new pair")
	}
}

func TestClickTrackerLineChange(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewClickTracker(500 * time.Millisecond)

	tracker.Observe(0, base)
	if tracker.Observe(1, base.Add(50*time.Millisecond)) {
		t.Fatalf("clicks on different lines are not a double click")
	}
	if !tracker.Observe(1, base.Add(100*time.Millisecond)) {
		t.Fatalf("expected double click on line 1")
	}

	tracker.Observe(5, base.Add(time.Second))
	tracker.Reset()
	if tracker.Observe(5, base.Add(time.Second+time.Millisecond)) {
		t.Fatalf("Reset should forget the previous press")
	}
}

func TestClickTrackerFirstClickOnRowZero(t *testing.T) {
	tracker := NewClickTracker(time.Second)
	if tracker.Observe(0, time.Now()) {
		t.Fatalf("a fresh tracker must not report a double click")
	}
}
