package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOwnItem        = errors.New("owner cannot book own item")
	ErrItemNotRented  = errors.New("item is not available for booking")
	ErrAlreadyDecided = errors.New("booking decision has already been made")
)

// Booking is a time-bounded rental request against an item. It refers to the
// item and the booker, it does not own either.
type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	period    Period
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// ItemSpec carries the item facts the booking rules need at creation time.
type ItemSpec struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Available bool
}

// NewBooking applies the creation rules: the booker must not be the item's
// owner and the item must be available. The new booking is always WAITING.
func NewBooking(item ItemSpec, bookerID uuid.UUID, period Period) (*Booking, error) {
	if item.OwnerID == bookerID {
		return nil, ErrOwnItem
	}
	if !item.Available {
		return nil, ErrItemNotRented
	}
	return &Booking{
		id:       uuid.New(),
		itemID:   item.ID,
		bookerID: bookerID,
		period:   period,
		status:   StatusWaiting,
	}, nil
}

func ReconstructBooking(
	id, itemID, bookerID uuid.UUID,
	period Period,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		period:    period,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Decide resolves a WAITING booking to APPROVED or REJECTED. Terminal states
// are immutable: deciding an already decided booking fails.
func (b *Booking) Decide(approved bool) error {
	if b.status.IsTerminal() {
		return ErrAlreadyDecided
	}
	if approved {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}

func (b *Booking) ID() uuid.UUID       { return b.id }
func (b *Booking) ItemID() uuid.UUID   { return b.itemID }
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }
func (b *Booking) Period() Period      { return b.period }
func (b *Booking) Status() Status      { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
