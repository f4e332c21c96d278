package readstore

import (
	"context"
	"errors"

	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/usecase/queries"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ItemReadStore struct {
	db db.DBTX
}

func NewItemReadStore(dbtx db.DBTX) *ItemReadStore {
	return &ItemReadStore{db: dbtx}
}

const itemViewSelect = `
SELECT id, owner_id, name, description, available
FROM items`

func (r *ItemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	var view queries.ItemView
	err := r.db.QueryRow(ctx, itemViewSelect+" WHERE id = $1", id).Scan(
		&view.ID,
		&view.OwnerID,
		&view.Name,
		&view.Description,
		&view.Available,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return &view, nil
}

func (r *ItemReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*queries.ItemView, error) {
	rows, err := r.db.Query(ctx, itemViewSelect+` WHERE owner_id = $1 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items", err)
	}
	defer rows.Close()

	result := make([]*queries.ItemView, 0)
	for rows.Next() {
		var view queries.ItemView
		if err := rows.Scan(&view.ID, &view.OwnerID, &view.Name, &view.Description, &view.Available); err != nil {
			return nil, infra.WrapRepoErr("failed to scan item row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read item rows", err)
	}
	return result, nil
}

const itemSnapshotSQL = `
SELECT id, owner_id, name, description, available
FROM items
WHERE id = $1`

func (r *ItemReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.ItemSnapshot, error) {
	var snap shared.ItemSnapshot
	err := r.db.QueryRow(ctx, itemSnapshotSQL, id).Scan(
		&snap.ID,
		&snap.OwnerID,
		&snap.Name,
		&snap.Description,
		&snap.Available,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to snapshot item", err)
	}
	return &snap, nil
}
