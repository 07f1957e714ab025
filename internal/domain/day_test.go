package domain

import (
	"testing"
	"time"
)

func TestDayOfNormalizes(t *testing.T) {
	loc := time.FixedZone("ART", -3*3600)

	// Late evening local time is still the same calendar day, even
	// though it is already tomorrow in UTC.
	d := DayOf(time.Date(2025, 6, 15, 23, 30, 0, 0, loc))
	if got := d.String(); got != "2025-06-15" {
		t.Errorf("DayOf late evening = %s, want 2025-06-15", got)
	}

	morning := DayOf(time.Date(2025, 6, 15, 8, 0, 0, 0, loc))
	if !d.Equal(morning) {
		t.Error("same local date produced different days")
	}
}

func TestDayOrdinal(t *testing.T) {
	epoch := DayOf(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC))
	if got := epoch.Ordinal(); got != 0 {
		t.Errorf("epoch ordinal = %d, want 0", got)
	}

	next := epoch.AddDays(1)
	if got := next.Ordinal(); got != 1 {
		t.Errorf("epoch+1 ordinal = %d, want 1", got)
	}

	a := DayOf(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	b := DayOf(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	if b.Ordinal()-a.Ordinal() != 1 {
		t.Errorf("consecutive days differ by %d ordinals", b.Ordinal()-a.Ordinal())
	}
}

func TestDayAddDays(t *testing.T) {
	d := DayOf(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))

	if got := d.AddDays(-1).String(); got != "2025-06-14" {
		t.Errorf("AddDays(-1) = %s, want 2025-06-14", got)
	}
	if got := d.AddDays(16).String(); got != "2025-07-01" {
		t.Errorf("AddDays(16) = %s, want 2025-07-01", got)
	}
	if !d.AddDays(3).AddDays(-3).Equal(d) {
		t.Error("AddDays round trip changed the day")
	}
}

func TestDayIsZero(t *testing.T) {
	var zero Day
	if !zero.IsZero() {
		t.Error("zero Day not reported as zero")
	}
	if DayOf(time.Now()).IsZero() {
		t.Error("today reported as zero")
	}
}
