package repository

import (
	"context"

	"gearshare/internal/domain/comment"
	"gearshare/internal/infra/db"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type CommentRepository struct{}

func NewCommentRepository() shared.CommentRepository {
	return &CommentRepository{}
}

const createCommentSQL = `
INSERT INTO comments (id, item_id, author_id, text, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`

func (r *CommentRepository) Create(ctx context.Context, tx db.DBTX, c *comment.Comment) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createCommentSQL,
		c.ID(),
		c.ItemID(),
		c.AuthorID(),
		c.Text(),
		c.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create comment", err)
	}
	return id, nil
}
