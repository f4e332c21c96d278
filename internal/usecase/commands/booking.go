package commands

import (
	"context"
	"errors"

	"gearshare/internal/domain/booking"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/infra"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/queries"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidPeriod           = errs.New("invalid booking period")
	ErrUserNotFound            = errs.New("user not found")
	ErrItemNotFound            = errs.New("item not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrOwnerBookingOwnItem     = errs.New("owner cannot book own item")
	ErrItemNotAvailable        = errs.New("item not available for booking")
	ErrNotOwner                = errs.New("actor is not the item owner")
	ErrAlreadyDecided          = errs.New("booking decision already made")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingCommands interface {
	Create(ctx context.Context, req reqdto.CreateBookingRequest, bookerID uuid.UUID) (*queries.BookingView, error)
	// Decide approves or rejects a WAITING booking. Only the item owner may
	// call it, and a booking already decided stays decided.
	Decide(ctx context.Context, bookingID, actorID uuid.UUID, approved bool) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	guard *availabilityGuard
	views queries.BookingReadStore
}

func NewBookingCommands(uow shared.UnitOfWork, views queries.BookingReadStore) BookingCommands {
	return &bookingCommandsImpl{
		uow:   uow,
		guard: &availabilityGuard{reads: uow.CommandReads()},
		views: views,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, req reqdto.CreateBookingRequest, bookerID uuid.UUID) (*queries.BookingView, error) {
	period, itemSnap, err := c.guard.Validate(ctx, req, bookerID)
	if err != nil {
		return nil, err
	}

	entity, err := booking.NewBooking(booking.ItemSpec{
		ID:        itemSnap.ID,
		OwnerID:   itemSnap.OwnerID,
		Available: itemSnap.Available,
	}, bookerID, period)
	if err != nil {
		return nil, markCreationError(err)
	}

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, txErr := tx.Bookings().Create(ctx, tx.DB(), entity)
		if txErr != nil {
			if infra.IsKind(txErr, infra.KindForeignKeyViolated) {
				return ErrItemNotFound
			}
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.readView(ctx, createdID)
}

func (c *bookingCommandsImpl) Decide(ctx context.Context, bookingID, actorID uuid.UUID, approved bool) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, txErr := tx.Reads().BookingByID(ctx, bookingID)
		if txErr != nil {
			if infra.IsKind(txErr, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}

		if snap.OwnerID != actorID {
			return ErrNotOwner
		}
		if snap.Status.IsTerminal() {
			return ErrAlreadyDecided
		}

		status := booking.StatusRejected
		if approved {
			status = booking.StatusApproved
		}

		// The guard above ran on a snapshot; the write re-checks the status
		// so a concurrent decision cannot slip in between read and write.
		rows, txErr := tx.Bookings().DecideIfWaiting(ctx, tx.DB(), bookingID, status)
		if txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		if rows == 0 {
			return ErrAlreadyDecided
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.readView(ctx, bookingID)
}

func (c *bookingCommandsImpl) readView(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := c.views.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// availabilityGuard runs the creation preconditions in order, short-circuiting
// on the first failure: period, actor existence, item existence. Ownership and
// availability are re-checked by the booking factory against the same snapshot
// since both may have changed since any earlier caller-side lookup.
type availabilityGuard struct {
	reads shared.CommandReads
}

func (g *availabilityGuard) Validate(ctx context.Context, req reqdto.CreateBookingRequest, actorID uuid.UUID) (booking.Period, *shared.ItemSnapshot, error) {
	period, err := booking.NewPeriod(req.Start, req.End)
	if err != nil {
		return booking.Period{}, nil, errs.Mark(err, ErrInvalidPeriod)
	}

	if _, err := g.reads.UserByID(ctx, actorID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return booking.Period{}, nil, ErrUserNotFound
		}
		return booking.Period{}, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	itemSnap, err := g.reads.ItemByID(ctx, req.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return booking.Period{}, nil, ErrItemNotFound
		}
		return booking.Period{}, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return period, itemSnap, nil
}

func markCreationError(err error) error {
	switch {
	case errors.Is(err, booking.ErrOwnItem):
		return errs.Mark(err, ErrOwnerBookingOwnItem)
	case errors.Is(err, booking.ErrItemNotRented):
		return errs.Mark(err, ErrItemNotAvailable)
	default:
		return err
	}
}
