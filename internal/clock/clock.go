// Package clock supplies the current calendar day. Every component
// that reasons about day boundaries goes through a single Clock so the
// whole system agrees on what "today" is.
package clock

import (
	"time"

	"github.com/streakworks/streakbot/internal/domain"
)

type Clock interface {
	Now() time.Time
	Today() domain.Day
}

// System tells time in a fixed location.
type System struct {
	loc *time.Location
}

func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.UTC
	}
	return &System{loc: loc}
}

func (s *System) Now() time.Time { return time.Now().In(s.loc) }

func (s *System) Today() domain.Day { return domain.DayOf(s.Now()) }

// Fixed always reports the same instant. Test helper.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

func (f Fixed) Today() domain.Day { return domain.DayOf(f.T) }
