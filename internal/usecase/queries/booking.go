package queries

import (
	"context"
	"time"

	"github.com/DanSBol/shareit/internal/domain/booking"
	"github.com/DanSBol/shareit/internal/infra"
	"github.com/DanSBol/shareit/internal/pkg/clock"
	"github.com/DanSBol/shareit/internal/pkg/errs"
)

// BookingReadStore is the query capability the engine needs from storage.
// State filtering happens in the store, evaluated against the "now" passed
// per call, never against creation time.
type BookingReadStore interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)
	FindByBooker(ctx context.Context, bookerID int64, state booking.State, now time.Time, page Page) ([]BookingView, error)
	FindByOwner(ctx context.Context, ownerID int64, state booking.State, now time.Time, page Page) ([]BookingView, error)
	LastShotForItem(ctx context.Context, itemID int64, now time.Time) (*BookingShot, error)
	NextShotForItem(ctx context.Context, itemID int64, now time.Time) (*BookingShot, error)
}

type UserExistsStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, requesterID, bookingID int64) (*BookingView, error)
	ListByBooker(ctx context.Context, userID int64, rawState string, from, size int) ([]BookingView, error)
	ListByOwner(ctx context.Context, userID int64, rawState string, from, size int) ([]BookingView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	users    UserExistsStore
	clock    clock.Clock
}

func NewBookingQueries(bookings BookingReadStore, users UserExistsStore, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		bookings: bookings,
		users:    users,
		clock:    clock,
	}
}

// GetByID authorizes the read relationally: only the booker or the item's
// owner may see a booking, anyone else gets not-found.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, requesterID, bookingID int64) (*BookingView, error) {
	if err := q.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	view, err := q.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if view.Booker.ID != requesterID && view.Item.OwnerID != requesterID {
		return nil, errs.ErrNotOwnerOrBooker
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByBooker(ctx context.Context, userID int64, rawState string, from, size int) ([]BookingView, error) {
	state, page, err := q.resolveListArgs(ctx, userID, rawState, from, size)
	if err != nil {
		return nil, err
	}

	views, err := q.bookings.FindByBooker(ctx, userID, state, q.clock.Now(), page)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, userID int64, rawState string, from, size int) ([]BookingView, error) {
	state, page, err := q.resolveListArgs(ctx, userID, rawState, from, size)
	if err != nil {
		return nil, err
	}

	views, err := q.bookings.FindByOwner(ctx, userID, state, q.clock.Now(), page)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

// resolveListArgs runs the shared validation chain of both list endpoints:
// user existence, then the state token, then pagination.
func (q *bookingQueriesImpl) resolveListArgs(ctx context.Context, userID int64, rawState string, from, size int) (booking.State, Page, error) {
	if err := q.requireUser(ctx, userID); err != nil {
		return "", Page{}, err
	}

	state, err := booking.ParseState(rawState)
	if err != nil {
		return "", Page{}, err
	}

	page, err := NewPage(from, size)
	if err != nil {
		return "", Page{}, err
	}
	return state, page, nil
}

func (q *bookingQueriesImpl) requireUser(ctx context.Context, userID int64) error {
	exists, err := q.users.Exists(ctx, userID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return errs.ErrUserNotFound
	}
	return nil
}
