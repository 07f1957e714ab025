package domain

import "time"

// Day is a calendar day normalized to midnight UTC. Streaks and daily
// task generation operate on this type so that every component agrees
// on where the day boundary is.
type Day struct {
	t time.Time
}

// DayOf extracts the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Day) Time() time.Time { return d.t }

// Ordinal is the number of days since the Unix epoch. Used as the
// deterministic seed for daily task generation.
func (d Day) Ordinal() int64 { return d.t.Unix() / 86400 }

func (d Day) AddDays(n int) Day { return Day{d.t.AddDate(0, 0, n)} }

func (d Day) Equal(o Day) bool { return d.t.Equal(o.t) }

func (d Day) IsZero() bool { return d.t.IsZero() }

func (d Day) String() string { return d.t.Format("2006-01-02") }
