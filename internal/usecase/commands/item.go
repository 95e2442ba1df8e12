package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/DanSBol/shareit/internal/domain/item"
	"github.com/DanSBol/shareit/internal/infra"
	"github.com/DanSBol/shareit/internal/pkg/clock"
	"github.com/DanSBol/shareit/internal/pkg/errs"
	"github.com/DanSBol/shareit/internal/usecase/queries"
)

var ErrEmptyComment = errs.New("empty comment text")

type CreateItemParams struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

type ItemCommands interface {
	Create(ctx context.Context, ownerID int64, params CreateItemParams) (*queries.ItemView, error)
	Update(ctx context.Context, ownerID, itemID int64, patch ItemPatch) (*queries.ItemView, error)
	Delete(ctx context.Context, ownerID, itemID int64) error
	AddComment(ctx context.Context, authorID, itemID int64, text string) (*queries.CommentView, error)
}

type itemCommandsImpl struct {
	items    ItemRepository
	users    UserRepository
	requests RequestRepository
	bookings BookingRepository
	comments CommentRepository
	views    queries.ItemReadStore
	pool     TxBeginner
	clock    clock.Clock
}

func NewItemCommands(
	items ItemRepository,
	users UserRepository,
	requests RequestRepository,
	bookings BookingRepository,
	comments CommentRepository,
	views queries.ItemReadStore,
	pool TxBeginner,
	clock clock.Clock,
) ItemCommands {
	return &itemCommandsImpl{
		items:    items,
		users:    users,
		requests: requests,
		bookings: bookings,
		comments: comments,
		views:    views,
		pool:     pool,
		clock:    clock,
	}
}

func (c *itemCommandsImpl) Create(ctx context.Context, ownerID int64, params CreateItemParams) (*queries.ItemView, error) {
	if err := c.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if params.RequestID != nil {
		exists, err := c.requests.Exists(ctx, *params.RequestID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !exists {
			return nil, errs.ErrRequestNotFound
		}
	}

	entity, err := item.NewItem(ownerID, params.Name, params.Description, params.Available, params.RequestID)
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

	id, err := c.items.Create(ctx, tx, entity)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return c.readView(ctx, id)
}

// Update patches name/description/availability. Only the item's owner may
// update; anyone else gets the not-found style rejection.
func (c *itemCommandsImpl) Update(ctx context.Context, ownerID, itemID int64, patch ItemPatch) (*queries.ItemView, error) {
	snapshot, err := c.items.FindSnapshot(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if snapshot.OwnerID != ownerID {
		return nil, errs.ErrNotOwner
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

	if err := c.items.Update(ctx, tx, itemID, patch); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return c.readView(ctx, itemID)
}

func (c *itemCommandsImpl) Delete(ctx context.Context, ownerID, itemID int64) error {
	snapshot, err := c.items.FindSnapshot(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrItemNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if snapshot.OwnerID != ownerID {
		return errs.ErrNotOwner
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

	if err := c.items.Delete(ctx, tx, itemID); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// AddComment lets a booker review an item, but only after an approved
// booking of that item has finished.
func (c *itemCommandsImpl) AddComment(ctx context.Context, authorID, itemID int64, text string) (*queries.CommentView, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyComment
	}
	if err := c.requireUser(ctx, authorID); err != nil {
		return nil, err
	}
	if _, err := c.items.FindSnapshot(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := c.clock.Now()
	finished, err := c.bookings.HasFinishedApproved(ctx, itemID, authorID, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !finished {
		return nil, errs.ErrNoFinishedBooking
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

	view, err := c.comments.Create(ctx, tx, itemID, authorID, strings.TrimSpace(text), now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *itemCommandsImpl) readView(ctx context.Context, id int64) (*queries.ItemView, error) {
	view, err := c.views.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *itemCommandsImpl) requireUser(ctx context.Context, userID int64) error {
	exists, err := c.users.Exists(ctx, userID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return errs.ErrUserNotFound
	}
	return nil
}
