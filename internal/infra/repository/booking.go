package repository

import (
	"context"

	"gearshare/internal/domain/booking"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() shared.BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (id, item_id, booker_id, start_at, end_at, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(),
		b.ItemID(),
		b.BookerID(),
		b.Period().Start(),
		b.Period().End(),
		string(b.Status()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create booking", err)
	}
	return id, nil
}

const decideBookingSQL = `
UPDATE bookings
SET status = $2, updated_at = now()
WHERE id = $1 AND status = 'WAITING'`

// DecideIfWaiting relies on the WHERE clause to keep concurrent decisions
// from overwriting a terminal status; a lost race reports zero rows.
func (r *BookingRepository) DecideIfWaiting(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) (int64, error) {
	tag, err := tx.Exec(ctx, decideBookingSQL, id, string(status))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to decide booking", err)
	}
	return tag.RowsAffected(), nil
}
