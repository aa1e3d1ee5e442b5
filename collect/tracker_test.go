package collect

import (
	"testing"
	"time"
)

func TestDaysSincePublish(t *testing.T) {
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	if got := daysSincePublish("", now); got != nil {
		t.Errorf("unknown date = %v, want NULL", *got)
	}
	if got := daysSincePublish("not-a-date", now); got != nil {
		t.Errorf("unparseable date = %v, want NULL", *got)
	}

	got := daysSincePublish("2026-07-27", now)
	if got == nil || *got != 30.5 {
		t.Errorf("daysSincePublish = %v, want 30.5", got)
	}

	// A same-instant publish rounds to zero and stores NULL rather than
	// a measured 0.0 age.
	if got := daysSincePublish("2026-08-26", time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)); got != nil {
		t.Errorf("zero age = %v, want NULL", *got)
	}
}
