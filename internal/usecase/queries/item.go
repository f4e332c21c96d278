package queries

import (
	"context"
	"time"

	"gearshare/internal/infra"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrItemNotFound = errs.New("item not found")

type ItemReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*ItemView, error)
}

// BookingSummaryReadStore answers the last/next projection per item. Both
// sides ignore REJECTED bookings; last is the latest start before now, next
// the earliest start after now. A nil stub means the side is empty.
type BookingSummaryReadStore interface {
	LastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*BookingStub, error)
	NextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*BookingStub, error)
}

type CommentReadStore interface {
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*CommentView, error)
}

type ItemQueries interface {
	// GetByID returns the item with comments; the booking summary is filled
	// only when the actor is the owner.
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page Page) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	items     ItemReadStore
	summaries BookingSummaryReadStore
	comments  CommentReadStore
	clock     clock.Clock
}

func NewItemQueries(
	items ItemReadStore,
	summaries BookingSummaryReadStore,
	comments CommentReadStore,
	clk clock.Clock,
) ItemQueries {
	return &itemQueriesImpl{items: items, summaries: summaries, comments: comments, clock: clk}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*ItemView, error) {
	view, err := q.items.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Wrap(err, "failed to find item")
	}

	if view.OwnerID == actorID {
		if err := q.attachSummary(ctx, view); err != nil {
			return nil, err
		}
	}

	comments, err := q.comments.ListByItem(ctx, id)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list item comments")
	}
	view.Comments = comments

	return view, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID, page Page) ([]*ItemView, error) {
	views, err := q.items.ListByOwner(ctx, ownerID, page.Limit(), page.Offset())
	if err != nil {
		return nil, errs.Wrap(err, "failed to list items")
	}
	for _, view := range views {
		if err := q.attachSummary(ctx, view); err != nil {
			return nil, err
		}
		comments, err := q.comments.ListByItem(ctx, view.ID)
		if err != nil {
			return nil, errs.Wrap(err, "failed to list item comments")
		}
		view.Comments = comments
	}
	return views, nil
}

func (q *itemQueriesImpl) attachSummary(ctx context.Context, view *ItemView) error {
	now := q.clock.Now()
	last, err := q.summaries.LastForItem(ctx, view.ID, now)
	if err != nil {
		return errs.Wrap(err, "failed to derive last booking")
	}
	next, err := q.summaries.NextForItem(ctx, view.ID, now)
	if err != nil {
		return errs.Wrap(err, "failed to derive next booking")
	}
	view.LastBooking = last
	view.NextBooking = next
	return nil
}
