package commands

import (
	"context"
	"log/slog"

	"github.com/DanSBol/shareit/internal/domain/request"
	"github.com/DanSBol/shareit/internal/infra"
	"github.com/DanSBol/shareit/internal/pkg/clock"
	"github.com/DanSBol/shareit/internal/pkg/errs"
	"github.com/DanSBol/shareit/internal/usecase/queries"
)

type RequestCommands interface {
	Create(ctx context.Context, requestorID int64, description string) (*queries.RequestView, error)
}

type requestCommandsImpl struct {
	requests RequestRepository
	users    UserRepository
	views    queries.RequestReadStore
	pool     TxBeginner
	clock    clock.Clock
}

func NewRequestCommands(
	requests RequestRepository,
	users UserRepository,
	views queries.RequestReadStore,
	pool TxBeginner,
	clock clock.Clock,
) RequestCommands {
	return &requestCommandsImpl{
		requests: requests,
		users:    users,
		views:    views,
		pool:     pool,
		clock:    clock,
	}
}

func (c *requestCommandsImpl) Create(ctx context.Context, requestorID int64, description string) (*queries.RequestView, error) {
	exists, err := c.users.Exists(ctx, requestorID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, errs.ErrUserNotFound
	}

	entity, err := request.NewRequest(requestorID, description)
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

	id, err := c.requests.Create(ctx, tx, entity, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view, err := c.views.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRequestNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	view.Items = []queries.ItemRef{}
	return view, nil
}
