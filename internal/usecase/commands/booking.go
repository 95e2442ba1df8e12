package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/DanSBol/shareit/internal/domain/booking"
	"github.com/DanSBol/shareit/internal/infra"
	"github.com/DanSBol/shareit/internal/pkg/clock"
	"github.com/DanSBol/shareit/internal/pkg/errs"
	"github.com/DanSBol/shareit/internal/usecase/queries"
)

type BookingCommands interface {
	Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*queries.BookingView, error)
	Resolve(ctx context.Context, ownerID, bookingID int64, approved bool) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookings BookingRepository
	items    ItemRepository
	users    UserRepository
	views    queries.BookingReadStore
	pool     TxBeginner
	clock    clock.Clock
}

func NewBookingCommands(
	bookings BookingRepository,
	items ItemRepository,
	users UserRepository,
	views queries.BookingReadStore,
	pool TxBeginner,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookings: bookings,
		items:    items,
		users:    users,
		views:    views,
		pool:     pool,
		clock:    clock,
	}
}

// Create validates a new booking request and persists it as WAITING.
// The check order (dates, item, availability, user, owner) matches the
// original API behavior and is observable through error codes.
func (c *bookingCommandsImpl) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*queries.BookingView, error) {
	entity, err := booking.NewBooking(itemID, bookerID, start, end, c.clock.Now())
	if err != nil {
		return nil, err
	}

	snapshot, err := c.items.FindSnapshot(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !snapshot.Available {
		return nil, errs.ErrItemUnavailable
	}

	exists, err := c.users.Exists(ctx, bookerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, errs.ErrUserNotFound
	}

	// Owners cannot book their own items. Surfaced as not-found on
	// purpose; see the error design notes.
	if snapshot.OwnerID == bookerID {
		return nil, errs.ErrOwnerBooking
	}

	id, err := c.createInTx(ctx, entity)
	if err != nil {
		return nil, err
	}
	return c.readView(ctx, id)
}

// Resolve applies the owner's approve/reject decision. The booking row is
// locked for the duration of the transaction so concurrent resolutions of
// the same booking serialize instead of double-approving.
func (c *bookingCommandsImpl) Resolve(ctx context.Context, ownerID, bookingID int64, approved bool) (*queries.BookingView, error) {
	exists, err := c.users.Exists(ctx, ownerID)
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

	record, err := c.bookings.FindByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if record.ItemOwnerID != ownerID {
		return nil, errs.ErrNotOwner
	}

	if err := record.Booking.Resolve(approved); err != nil {
		return nil, err
	}

	if err := c.bookings.UpdateStatus(ctx, tx, bookingID, record.Booking.Status()); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return c.readView(ctx, bookingID)
}

func (c *bookingCommandsImpl) createInTx(ctx context.Context, entity *booking.Booking) (int64, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !isTxClosed(rollbackErr) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	id, err := c.bookings.Create(ctx, tx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return 0, errs.ErrItemNotFound
		}
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return id, nil
}

// Read-after-write: serve the caller the same view the read side would.
func (c *bookingCommandsImpl) readView(ctx context.Context, id int64) (*queries.BookingView, error) {
	view, err := c.views.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
