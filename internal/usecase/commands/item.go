package commands

import (
	"context"
	"time"

	"gearshare/internal/domain/comment"
	"gearshare/internal/domain/item"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/infra"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNotItemOwner       = errs.New("actor is not the owner of the item")
	ErrInvalidItem        = errs.New("invalid item data")
	ErrInvalidComment     = errs.New("invalid comment data")
	ErrNoCompletedBooking = errs.New("no completed booking of the item by this user")
)

type CreateCommentResult struct {
	CommentID  uuid.UUID
	AuthorName string
	CreatedAt  time.Time
}

type ItemCommands interface {
	Create(ctx context.Context, req reqdto.CreateItemRequest, ownerID uuid.UUID) (uuid.UUID, error)
	Update(ctx context.Context, itemID uuid.UUID, req reqdto.UpdateItemRequest, actorID uuid.UUID) error
	Delete(ctx context.Context, itemID, actorID uuid.UUID) error
	// AddComment is gated on a completed approved booking of the item by the
	// author.
	AddComment(ctx context.Context, itemID, authorID uuid.UUID, req reqdto.CreateCommentRequest) (*CreateCommentResult, error)
}

type itemCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewItemCommands(uow shared.UnitOfWork, clk clock.Clock) ItemCommands {
	return &itemCommandsImpl{uow: uow, clock: clk}
}

func (c *itemCommandsImpl) Create(ctx context.Context, req reqdto.CreateItemRequest, ownerID uuid.UUID) (uuid.UUID, error) {
	available := req.Available != nil && *req.Available
	entity, err := item.NewItem(ownerID, req.Name, req.Description, available)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidItem)
	}

	var createdID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, txErr := tx.Reads().UserByID(ctx, ownerID); txErr != nil {
			if infra.IsKind(txErr, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		id, txErr := tx.Items().Create(ctx, tx.DB(), entity)
		if txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		createdID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

func (c *itemCommandsImpl) Update(ctx context.Context, itemID uuid.UUID, req reqdto.UpdateItemRequest, actorID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := c.ownedItem(ctx, tx, itemID, actorID)
		if err != nil {
			return err
		}

		entity := item.ReconstructItem(snap.ID, snap.OwnerID, snap.Name, snap.Description, snap.Available, time.Time{}, time.Time{})
		if err := entity.Patch(req.Name, req.Description, req.Available); err != nil {
			return errs.Mark(err, ErrInvalidItem)
		}

		if err := tx.Items().Update(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *itemCommandsImpl) Delete(ctx context.Context, itemID, actorID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := c.ownedItem(ctx, tx, itemID, actorID); err != nil {
			return err
		}
		if err := tx.Items().Delete(ctx, tx.DB(), itemID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *itemCommandsImpl) AddComment(ctx context.Context, itemID, authorID uuid.UUID, req reqdto.CreateCommentRequest) (*CreateCommentResult, error) {
	now := c.clock.Now()

	var result CreateCommentResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		author, txErr := tx.Reads().UserByID(ctx, authorID)
		if txErr != nil {
			if infra.IsKind(txErr, infra.KindNotFound) {
				return ErrUserNotFound
			}
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}

		if _, txErr = tx.Reads().ItemByID(ctx, itemID); txErr != nil {
			if infra.IsKind(txErr, infra.KindNotFound) {
				return ErrItemNotFound
			}
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}

		eligible, txErr := tx.Reads().HasCompletedBooking(ctx, itemID, authorID, now)
		if txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		if !eligible {
			return ErrNoCompletedBooking
		}

		entity, txErr := comment.NewComment(itemID, authorID, req.Text, now)
		if txErr != nil {
			return errs.Mark(txErr, ErrInvalidComment)
		}

		id, txErr := tx.Comments().Create(ctx, tx.DB(), entity)
		if txErr != nil {
			return errs.Mark(txErr, ErrDatabaseOperationFailed)
		}
		result = CreateCommentResult{CommentID: id, AuthorName: author.Name, CreatedAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *itemCommandsImpl) ownedItem(ctx context.Context, tx shared.Tx, itemID, actorID uuid.UUID) (*shared.ItemSnapshot, error) {
	snap, err := tx.Reads().ItemByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if snap.OwnerID != actorID {
		return nil, ErrNotItemOwner
	}
	return snap, nil
}
