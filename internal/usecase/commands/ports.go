package commands

import (
	"context"
	"time"

	"github.com/DanSBol/shareit/internal/domain/booking"
	"github.com/DanSBol/shareit/internal/domain/item"
	"github.com/DanSBol/shareit/internal/domain/request"
	"github.com/DanSBol/shareit/internal/domain/user"
	"github.com/DanSBol/shareit/internal/infra/db"
	"github.com/DanSBol/shareit/internal/usecase/queries"
)

// BookingRecord couples a stored booking with the owner of its item, read
// under a row lock so the resolve check-then-set cannot race.
type BookingRecord struct {
	Booking     *booking.Booking
	ItemOwnerID int64
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (int64, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id int64) (*BookingRecord, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id int64, status booking.Status) error
	// HasFinishedApproved reports whether the booker had an approved
	// booking of the item that ended before now. Gates commenting.
	HasFinishedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

// ItemSnapshot is what the lifecycle needs to gate a new booking: existence,
// availability and the owner relation.
type ItemSnapshot struct {
	ID        int64
	OwnerID   int64
	Name      string
	Available bool
}

type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

type ItemRepository interface {
	Create(ctx context.Context, tx db.DBTX, it *item.Item) (int64, error)
	Update(ctx context.Context, tx db.DBTX, id int64, patch ItemPatch) error
	Delete(ctx context.Context, tx db.DBTX, id int64) error
	FindSnapshot(ctx context.Context, id int64) (*ItemSnapshot, error)
}

type UserPatch struct {
	Name  *string
	Email *string
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (int64, error)
	Update(ctx context.Context, tx db.DBTX, id int64, patch UserPatch) error
	Delete(ctx context.Context, tx db.DBTX, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type RequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *request.Request, createdAt time.Time) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, tx db.DBTX, itemID, authorID int64, text string, createdAt time.Time) (*queries.CommentView, error)
}
