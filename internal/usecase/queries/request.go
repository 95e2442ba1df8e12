package queries

import (
	"context"

	"github.com/DanSBol/shareit/internal/infra"
	"github.com/DanSBol/shareit/internal/pkg/errs"
)

type RequestReadStore interface {
	FindByID(ctx context.Context, id int64) (*RequestView, error)
	FindByRequestor(ctx context.Context, requestorID int64) ([]RequestView, error)
	// FindOthers lists requests created by anyone except userID,
	// newest first.
	FindOthers(ctx context.Context, userID int64, page Page) ([]RequestView, error)
}

// ItemsByRequestStore resolves the items listed in answer to requests.
type ItemsByRequestStore interface {
	FindByRequest(ctx context.Context, requestID int64) ([]ItemRef, error)
}

type RequestQueries interface {
	GetByID(ctx context.Context, requesterID, requestID int64) (*RequestView, error)
	ListOwn(ctx context.Context, userID int64) ([]RequestView, error)
	ListOthers(ctx context.Context, userID int64, from, size int) ([]RequestView, error)
}

type requestQueriesImpl struct {
	requests RequestReadStore
	items    ItemsByRequestStore
	users    UserExistsStore
}

func NewRequestQueries(requests RequestReadStore, items ItemsByRequestStore, users UserExistsStore) RequestQueries {
	return &requestQueriesImpl{
		requests: requests,
		items:    items,
		users:    users,
	}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, requesterID, requestID int64) (*RequestView, error) {
	if err := q.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	view, err := q.requests.FindByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRequestNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := q.attachItems(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *requestQueriesImpl) ListOwn(ctx context.Context, userID int64) ([]RequestView, error) {
	if err := q.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	views, err := q.requests.FindByRequestor(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	for i := range views {
		if err := q.attachItems(ctx, &views[i]); err != nil {
			return nil, err
		}
	}
	return views, nil
}

func (q *requestQueriesImpl) ListOthers(ctx context.Context, userID int64, from, size int) ([]RequestView, error) {
	if err := q.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	page, err := NewPage(from, size)
	if err != nil {
		return nil, err
	}

	views, err := q.requests.FindOthers(ctx, userID, page)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	for i := range views {
		if err := q.attachItems(ctx, &views[i]); err != nil {
			return nil, err
		}
	}
	return views, nil
}

func (q *requestQueriesImpl) attachItems(ctx context.Context, view *RequestView) error {
	items, err := q.items.FindByRequest(ctx, view.ID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	view.Items = items
	return nil
}

func (q *requestQueriesImpl) requireUser(ctx context.Context, userID int64) error {
	exists, err := q.users.Exists(ctx, userID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return errs.ErrUserNotFound
	}
	return nil
}
