package queries

import (
	"gearshare/internal/pkg/errs"
)

var (
	ErrUnknownState = errs.New("unknown booking state token")
	ErrInvalidPage  = errs.New("invalid pagination parameters")
)

// State names one of the six booking views. Matching is exact and
// case-sensitive against this fixed set.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

func ParseState(token string) (State, error) {
	switch State(token) {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return State(token), nil
	default:
		return "", ErrUnknownState
	}
}

// Page translates a zero-based offset into whole pages. The result window is
// the page with index floor(From/Size), so a From that is not a multiple of
// Size rounds down to the containing page.
type Page struct {
	From int
	Size int
}

func NewPage(from, size int) (Page, error) {
	if from < 0 || size <= 0 {
		return Page{}, ErrInvalidPage
	}
	return Page{From: from, Size: size}, nil
}

func (p Page) Limit() int32 {
	return int32(p.Size)
}

func (p Page) Offset() int32 {
	return int32(p.From/p.Size) * int32(p.Size)
}
