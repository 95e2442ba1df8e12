package queries

import (
	"context"
	"strings"

	"github.com/DanSBol/shareit/internal/infra"
	"github.com/DanSBol/shareit/internal/pkg/clock"
	"github.com/DanSBol/shareit/internal/pkg/errs"
)

type ItemReadStore interface {
	FindByID(ctx context.Context, id int64) (*ItemView, error)
	FindByOwner(ctx context.Context, ownerID int64, page Page) ([]ItemView, error)
	Search(ctx context.Context, text string, page Page) ([]ItemView, error)
}

type CommentReadStore interface {
	FindByItem(ctx context.Context, itemID int64) ([]CommentView, error)
}

type ItemQueries interface {
	GetByID(ctx context.Context, requesterID, itemID int64) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]ItemView, error)
	Search(ctx context.Context, text string, from, size int) ([]ItemView, error)
}

type itemQueriesImpl struct {
	items    ItemReadStore
	comments CommentReadStore
	bookings BookingReadStore
	users    UserExistsStore
	clock    clock.Clock
}

func NewItemQueries(items ItemReadStore, comments CommentReadStore, bookings BookingReadStore, users UserExistsStore, clock clock.Clock) ItemQueries {
	return &itemQueriesImpl{
		items:    items,
		comments: comments,
		bookings: bookings,
		users:    users,
		clock:    clock,
	}
}

// GetByID returns the item with its comments. The last/next booking shots
// are visible to the owner only; a booker sees the bare item.
func (q *itemQueriesImpl) GetByID(ctx context.Context, requesterID, itemID int64) (*ItemView, error) {
	view, err := q.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if view.OwnerID == requesterID {
		if err := q.attachShots(ctx, view); err != nil {
			return nil, err
		}
	}
	if err := q.attachComments(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]ItemView, error) {
	exists, err := q.users.Exists(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, errs.ErrUserNotFound
	}

	page, err := NewPage(from, size)
	if err != nil {
		return nil, err
	}

	views, err := q.items.FindByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	for i := range views {
		if err := q.attachShots(ctx, &views[i]); err != nil {
			return nil, err
		}
		if err := q.attachComments(ctx, &views[i]); err != nil {
			return nil, err
		}
	}
	return views, nil
}

// Search matches name and description case-insensitively among available
// items. A blank query returns an empty list, not an error.
func (q *itemQueriesImpl) Search(ctx context.Context, text string, from, size int) ([]ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemView{}, nil
	}

	page, err := NewPage(from, size)
	if err != nil {
		return nil, err
	}

	views, err := q.items.Search(ctx, text, page)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *itemQueriesImpl) attachShots(ctx context.Context, view *ItemView) error {
	now := q.clock.Now()

	last, err := q.bookings.LastShotForItem(ctx, view.ID, now)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	next, err := q.bookings.NextShotForItem(ctx, view.ID, now)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view.LastBooking = last
	view.NextBooking = next
	return nil
}

func (q *itemQueriesImpl) attachComments(ctx context.Context, view *ItemView) error {
	comments, err := q.comments.FindByItem(ctx, view.ID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	view.Comments = comments
	return nil
}
