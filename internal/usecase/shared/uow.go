package shared

import (
	"context"
	"time"

	"gearshare/internal/domain/booking"
	"gearshare/internal/domain/comment"
	"gearshare/internal/domain/item"
	"gearshare/internal/domain/user"
	"gearshare/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn inside one transaction, retrying on serialization
	// failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads gives validation-time reads outside a transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Items() ItemRepository
	Users() UserRepository
	Comments() CommentRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	ItemByID(ctx context.Context, id uuid.UUID) (*ItemSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// HasCompletedBooking reports whether the user holds an APPROVED booking
	// of the item that ended before now.
	HasCompletedBooking(ctx context.Context, itemID, userID uuid.UUID, now time.Time) (bool, error)
}

// Write-side snapshots keep the command layer off the read-side view types.
type UserSnapshot struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type ItemSnapshot struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Available   bool
}

// BookingSnapshot joins in the item's owner so authorization and the
// idempotency guard run off one read.
type BookingSnapshot struct {
	ID       uuid.UUID
	ItemID   uuid.UUID
	OwnerID  uuid.UUID
	BookerID uuid.UUID
	Status   booking.Status
	Start    time.Time
	End      time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	// DecideIfWaiting sets the terminal status only when the row is still
	// WAITING at write time; it reports the number of rows updated so a lost
	// race shows up as zero.
	DecideIfWaiting(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) (int64, error)
}

type ItemRepository interface {
	Create(ctx context.Context, tx db.DBTX, it *item.Item) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, it *item.Item) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, u *user.User) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *comment.Comment) (uuid.UUID, error)
}
