package commands

import (
	"context"
	"errors"
	"time"

	"gearshare/internal/domain/user"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/infra"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDuplicateEmail = errs.New("email already in use")
	ErrInvalidUser    = errs.New("invalid user data")
)

type UserCommands interface {
	Create(ctx context.Context, req reqdto.CreateUserRequest) (uuid.UUID, error)
	Update(ctx context.Context, userID uuid.UUID, req reqdto.UpdateUserRequest) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewUserCommands(uow shared.UnitOfWork) UserCommands {
	return &userCommandsImpl{uow: uow}
}

func (c *userCommandsImpl) Create(ctx context.Context, req reqdto.CreateUserRequest) (uuid.UUID, error) {
	entity, err := user.NewUser(req.Name, req.Email)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidUser)
	}

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, txErr := tx.Users().Create(ctx, tx.DB(), entity)
		if txErr != nil {
			return markUserWriteError(txErr)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (c *userCommandsImpl) Update(ctx context.Context, userID uuid.UUID, req reqdto.UpdateUserRequest) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().UserByID(ctx, userID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity := user.ReconstructUser(snap.ID, snap.Name, snap.Email, time.Time{}, time.Time{})
		if err := entity.Patch(req.Name, req.Email); err != nil {
			return errs.Mark(err, ErrInvalidUser)
		}

		if err := tx.Users().Update(ctx, tx.DB(), entity); err != nil {
			return markUserWriteError(err)
		}
		return nil
	})
}

func (c *userCommandsImpl) Delete(ctx context.Context, userID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().UserByID(ctx, userID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Users().Delete(ctx, tx.DB(), userID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func markUserWriteError(err error) error {
	if infra.IsKind(err, infra.KindDuplicateKey) {
		return errs.Mark(err, ErrDuplicateEmail)
	}
	if errors.Is(err, ErrDuplicateEmail) {
		return err
	}
	return errs.Mark(err, ErrDatabaseOperationFailed)
}
