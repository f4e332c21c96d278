package booking

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("booking start must be strictly before end")

// Period is the half-open rental window [start, end). Start must be strictly
// before end; equality is illegal.
type Period struct {
	start time.Time
	end   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if !start.Before(end) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{start: start, end: end}, nil
}

func (p Period) Start() time.Time {
	return p.start
}

func (p Period) End() time.Time {
	return p.end
}

func (p Period) Duration() time.Duration {
	return p.end.Sub(p.start)
}

// Contains reports whether the instant falls inside the period, boundaries
// included. This is the CURRENT-partition predicate.
func (p Period) Contains(now time.Time) bool {
	return !now.Before(p.start) && !now.After(p.end)
}

func (p Period) EndedBefore(now time.Time) bool {
	return p.end.Before(now)
}

func (p Period) StartsAfter(now time.Time) bool {
	return p.start.After(now)
}
