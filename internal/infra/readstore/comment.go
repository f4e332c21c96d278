package readstore

import (
	"context"

	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type CommentReadStore struct {
	db db.DBTX
}

func NewCommentReadStore(dbtx db.DBTX) *CommentReadStore {
	return &CommentReadStore{db: dbtx}
}

const commentsByItemSQL = `
SELECT c.id, c.text, u.name, c.created_at
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.item_id = $1
ORDER BY c.created_at DESC, c.id DESC`

func (r *CommentReadStore) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*queries.CommentView, error) {
	rows, err := r.db.Query(ctx, commentsByItemSQL, itemID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list comments", err)
	}
	defer rows.Close()

	result := make([]*queries.CommentView, 0)
	for rows.Next() {
		var view queries.CommentView
		if err := rows.Scan(&view.ID, &view.Text, &view.AuthorName, &view.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan comment row", err)
		}
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read comment rows", err)
	}
	return result, nil
}
