package commands

import (
	"context"
	"log/slog"

	"github.com/DanSBol/shareit/internal/domain/user"
	"github.com/DanSBol/shareit/internal/infra"
	"github.com/DanSBol/shareit/internal/pkg/errs"
	"github.com/DanSBol/shareit/internal/usecase/queries"
)

type UserCommands interface {
	Create(ctx context.Context, name, email string) (*queries.UserView, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*queries.UserView, error)
	Delete(ctx context.Context, id int64) error
}

type userCommandsImpl struct {
	users UserRepository
	views queries.UserReadStore
	pool  TxBeginner
}

func NewUserCommands(users UserRepository, views queries.UserReadStore, pool TxBeginner) UserCommands {
	return &userCommandsImpl{
		users: users,
		views: views,
		pool:  pool,
	}
}

func (c *userCommandsImpl) Create(ctx context.Context, name, email string) (*queries.UserView, error) {
	addr, err := user.NewEmail(email)
	if err != nil {
		return nil, err
	}
	entity, err := user.NewUser(name, addr)
	if err != nil {
		return nil, err
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !isTxClosed(rollbackErr) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	id, err := c.users.Create(ctx, tx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.ErrEmailTaken
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return c.readView(ctx, id)
}

func (c *userCommandsImpl) Update(ctx context.Context, id int64, patch UserPatch) (*queries.UserView, error) {
	if patch.Email != nil {
		if _, err := user.NewEmail(*patch.Email); err != nil {
			return nil, err
		}
	}

	exists, err := c.users.Exists(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, errs.ErrUserNotFound
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !isTxClosed(rollbackErr) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := c.users.Update(ctx, tx, id, patch); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.ErrEmailTaken
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return c.readView(ctx, id)
}

func (c *userCommandsImpl) Delete(ctx context.Context, id int64) error {
	exists, err := c.users.Exists(ctx, id)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return errs.ErrUserNotFound
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !isTxClosed(rollbackErr) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := c.users.Delete(ctx, tx, id); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *userCommandsImpl) readView(ctx context.Context, id int64) (*queries.UserView, error) {
	view, err := c.views.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
