package readstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/usecase/queries"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const bookingViewSelect = `
SELECT b.id, b.start_at, b.end_at, b.status, b.created_at, b.updated_at,
       i.id, i.name, i.owner_id,
       u.id, u.name
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, bookingViewSelect+" WHERE b.id = $1", id)
	view, err := scanBookingView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) ListByBooker(ctx context.Context, bookerID uuid.UUID, f queries.BookingFilter) ([]*queries.BookingView, error) {
	return r.list(ctx, "b.booker_id", bookerID, f)
}

func (r *BookingReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, f queries.BookingFilter) ([]*queries.BookingView, error) {
	return r.list(ctx, "i.owner_id", ownerID, f)
}

// list runs the one parameterized partition query; the state only changes the
// predicate, never the shape or the ordering.
func (r *BookingReadStore) list(ctx context.Context, subjectColumn string, subjectID uuid.UUID, f queries.BookingFilter) ([]*queries.BookingView, error) {
	where, args := stateClause(subjectColumn, subjectID, f)

	sql := fmt.Sprintf(`%s
WHERE %s
ORDER BY b.start_at DESC
LIMIT $%d OFFSET $%d`, bookingViewSelect, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	result := make([]*queries.BookingView, 0)
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return result, nil
}

// stateClause builds the WHERE fragment for one temporal partition. CURRENT,
// PAST and FUTURE compare the interval against the evaluation instant and keep
// every status; WAITING and REJECTED filter on status alone.
func stateClause(subjectColumn string, subjectID uuid.UUID, f queries.BookingFilter) (string, []any) {
	where := subjectColumn + " = $1"
	args := []any{subjectID}

	switch f.State {
	case queries.StateCurrent:
		where += " AND b.start_at <= $2 AND b.end_at >= $2"
		args = append(args, f.Now)
	case queries.StatePast:
		where += " AND b.end_at < $2"
		args = append(args, f.Now)
	case queries.StateFuture:
		where += " AND b.start_at > $2"
		args = append(args, f.Now)
	case queries.StateWaiting:
		where += " AND b.status = 'WAITING'"
	case queries.StateRejected:
		where += " AND b.status = 'REJECTED'"
	case queries.StateAll:
	}
	return where, args
}

const lastBookingSQL = `
SELECT b.id, b.booker_id, b.start_at, b.end_at
FROM bookings b
WHERE b.item_id = $1 AND b.status <> 'REJECTED' AND b.start_at < $2
ORDER BY b.start_at DESC
LIMIT 1`

func (r *BookingReadStore) LastForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*queries.BookingStub, error) {
	return r.findStub(ctx, lastBookingSQL, itemID, now)
}

const nextBookingSQL = `
SELECT b.id, b.booker_id, b.start_at, b.end_at
FROM bookings b
WHERE b.item_id = $1 AND b.status <> 'REJECTED' AND b.start_at > $2
ORDER BY b.start_at ASC
LIMIT 1`

func (r *BookingReadStore) NextForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*queries.BookingStub, error) {
	return r.findStub(ctx, nextBookingSQL, itemID, now)
}

func (r *BookingReadStore) findStub(ctx context.Context, sql string, itemID uuid.UUID, now time.Time) (*queries.BookingStub, error) {
	var stub queries.BookingStub
	err := r.db.QueryRow(ctx, sql, itemID, now).Scan(&stub.ID, &stub.BookerID, &stub.Start, &stub.End)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to derive booking summary", err)
	}
	return &stub, nil
}

const hasCompletedBookingSQL = `
SELECT EXISTS (
	SELECT 1 FROM bookings
	WHERE item_id = $1 AND booker_id = $2 AND status = 'APPROVED' AND end_at < $3
)`

func (r *BookingReadStore) HasCompletedBooking(ctx context.Context, itemID, userID uuid.UUID, now time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, hasCompletedBookingSQL, itemID, userID, now).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check completed bookings", err)
	}
	return exists, nil
}

const bookingSnapshotSQL = `
SELECT b.id, b.item_id, i.owner_id, b.booker_id, b.status, b.start_at, b.end_at
FROM bookings b
JOIN items i ON i.id = b.item_id
WHERE b.id = $1`

func (r *BookingReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var snap shared.BookingSnapshot
	err := r.db.QueryRow(ctx, bookingSnapshotSQL, id).Scan(
		&snap.ID,
		&snap.ItemID,
		&snap.OwnerID,
		&snap.BookerID,
		&snap.Status,
		&snap.Start,
		&snap.End,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to snapshot booking", err)
	}
	return &snap, nil
}

type bookingRowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row bookingRowScanner) (*queries.BookingView, error) {
	var view queries.BookingView
	err := row.Scan(
		&view.ID,
		&view.Start,
		&view.End,
		&view.Status,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.Item.ID,
		&view.Item.Name,
		&view.Item.OwnerID,
		&view.Booker.ID,
		&view.Booker.Name,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
