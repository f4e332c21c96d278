package repository

import (
	"context"

	"gearshare/internal/domain/user"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() shared.UserRepository {
	return &UserRepository{}
}

const createUserSQL = `
INSERT INTO users (id, name, email)
VALUES ($1, $2, $3)
RETURNING id`

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createUserSQL, u.ID(), u.Name(), u.Email()).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create user", err)
	}
	return id, nil
}

const updateUserSQL = `
UPDATE users
SET name = $2, email = $3, updated_at = now()
WHERE id = $1`

func (r *UserRepository) Update(ctx context.Context, tx db.DBTX, u *user.User) error {
	tag, err := tx.Exec(ctx, updateUserSQL, u.ID(), u.Name(), u.Email())
	if err != nil {
		return wrapWriteErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

const deleteUserSQL = `DELETE FROM users WHERE id = $1`

func (r *UserRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deleteUserSQL, id)
	if err != nil {
		return wrapWriteErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
