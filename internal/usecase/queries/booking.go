package queries

import (
	"context"
	"time"

	"gearshare/internal/infra"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrNoAccess        = errs.New("no access to booking")
)

// BookingFilter is the single parameterized shape behind every partition: a
// state token, the evaluation instant, and a page window. The six views share
// one query per role instead of one finder per state.
type BookingFilter struct {
	State  State
	Now    time.Time
	Limit  int32
	Offset int32
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByBooker(ctx context.Context, bookerID uuid.UUID, f BookingFilter) ([]*BookingView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, f BookingFilter) ([]*BookingView, error)
}

type BookingQueries interface {
	// GetByID returns the booking only to its booker or the item's owner.
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error)
	ListForBooker(ctx context.Context, bookerID uuid.UUID, state State, page Page) ([]*BookingView, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, state State, page Page) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	users    UserReadStore
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingReadStore, users UserReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, users: users, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}
	if view.Booker.ID != actorID && view.Item.OwnerID != actorID {
		return nil, ErrNoAccess
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForBooker(ctx context.Context, bookerID uuid.UUID, state State, page Page) ([]*BookingView, error) {
	if err := q.ensureUserExists(ctx, bookerID); err != nil {
		return nil, err
	}
	return q.bookings.ListByBooker(ctx, bookerID, q.filter(state, page))
}

func (q *bookingQueriesImpl) ListForOwner(ctx context.Context, ownerID uuid.UUID, state State, page Page) ([]*BookingView, error) {
	if err := q.ensureUserExists(ctx, ownerID); err != nil {
		return nil, err
	}
	return q.bookings.ListByOwner(ctx, ownerID, q.filter(state, page))
}

func (q *bookingQueriesImpl) filter(state State, page Page) BookingFilter {
	return BookingFilter{
		State:  state,
		Now:    q.clock.Now(),
		Limit:  page.Limit(),
		Offset: page.Offset(),
	}
}

func (q *bookingQueriesImpl) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	if _, err := q.users.FindByID(ctx, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return errs.Wrap(err, "failed to find user")
	}
	return nil
}
