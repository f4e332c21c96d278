package repository

import (
	"context"

	"gearshare/internal/domain/item"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type ItemRepository struct{}

func NewItemRepository() shared.ItemRepository {
	return &ItemRepository{}
}

const createItemSQL = `
INSERT INTO items (id, owner_id, name, description, available)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

func (r *ItemRepository) Create(ctx context.Context, tx db.DBTX, it *item.Item) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createItemSQL,
		it.ID(),
		it.OwnerID(),
		it.Name(),
		it.Description(),
		it.Available(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create item", err)
	}
	return id, nil
}

const updateItemSQL = `
UPDATE items
SET name = $2, description = $3, available = $4, updated_at = now()
WHERE id = $1`

func (r *ItemRepository) Update(ctx context.Context, tx db.DBTX, it *item.Item) error {
	tag, err := tx.Exec(ctx, updateItemSQL,
		it.ID(),
		it.Name(),
		it.Description(),
		it.Available(),
	)
	if err != nil {
		return wrapWriteErr("failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteItemSQL = `DELETE FROM items WHERE id = $1`

func (r *ItemRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteItemSQL, id)
	if err != nil {
		return wrapWriteErr("failed to delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}
