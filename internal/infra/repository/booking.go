package repository

import (
	"context"
	"errors"
	"time"

	"github.com/DanSBol/shareit/internal/domain/booking"
	"github.com/DanSBol/shareit/internal/infra"
	"github.com/DanSBol/shareit/internal/infra/db"
	"github.com/DanSBol/shareit/internal/usecase/commands"
	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository implements both the lifecycle write port and the
// bucketed read store over the bookings table.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// stateConditions translates a retrieval bucket into SQL predicates against
// the "now" supplied per query. Pure so the classification is testable
// without a database. ALL yields no predicate.
func stateConditions(state booking.State, now time.Time) []squirrel.Sqlizer {
	switch state {
	case booking.StateCurrent:
		return []squirrel.Sqlizer{
			squirrel.LtOrEq{"b.start_time": now},
			squirrel.GtOrEq{"b.end_time": now},
		}
	case booking.StateFuture:
		return []squirrel.Sqlizer{squirrel.Gt{"b.start_time": now}}
	case booking.StatePast:
		return []squirrel.Sqlizer{
			squirrel.Lt{"b.end_time": now},
			squirrel.Eq{"b.status": booking.StatusApproved.String()},
		}
	case booking.StateWaiting:
		return []squirrel.Sqlizer{squirrel.Eq{"b.status": booking.StatusWaiting.String()}}
	case booking.StateRejected:
		return []squirrel.Sqlizer{squirrel.Eq{"b.status": booking.StatusRejected.String()}}
	default:
		return nil
	}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (int64, error) {
	query, args, err := psql.Insert("bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID(), b.BookerID(), b.TimeRange().Start(), b.TimeRange().End(), b.Status().String()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build create booking query", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return 0, infra.WrapRepoErr("booking references missing row", err, infra.KindForeignKeyViolated)
		}
		return 0, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

// FindByIDForUpdate loads the booking together with its item's owner and
// locks the booking row until the surrounding transaction ends.
func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id int64) (*commands.BookingRecord, error) {
	query, args, err := psql.Select(
		"b.id", "b.item_id", "b.booker_id", "b.start_time", "b.end_time",
		"b.status", "b.created_at", "i.owner_id",
	).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Where(squirrel.Eq{"b.id": id}).
		Suffix("FOR UPDATE OF b").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking lock query", err)
	}

	var (
		bookingID, itemID, bookerID, ownerID int64
		start, end, createdAt                time.Time
		status                               string
	)
	if err := tx.QueryRow(ctx, query, args...).Scan(
		&bookingID, &itemID, &bookerID, &start, &end, &status, &createdAt, &ownerID,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}

	entity, err := booking.ReconstructBooking(bookingID, itemID, bookerID, start, end, booking.Status(status), createdAt)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking is corrupt", err)
	}
	return &commands.BookingRecord{Booking: entity, ItemOwnerID: ownerID}, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id int64, status booking.Status) error {
	query, args, err := psql.Update("bookings").
		Set("status", status.String()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build update booking status query", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if ct.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) HasFinishedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	sub, args, err := psql.Select("1").
		From("bookings").
		Where(squirrel.Eq{"item_id": itemID}).
		Where(squirrel.Eq{"booker_id": bookerID}).
		Where(squirrel.Eq{"status": booking.StatusApproved.String()}).
		Where(squirrel.Lt{"end_time": now}).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build finished booking query", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check finished booking", err)
	}
	return exists, nil
}

const bookingViewColumns = "b.id, b.start_time, b.end_time, b.status, " +
	"b.booker_id, u.name, b.item_id, i.name, i.owner_id"

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	query, args, err := psql.Select(bookingViewColumns).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking view query", err)
	}

	view, err := scanBookingView(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return view, nil
}

func (r *BookingRepository) FindByBooker(ctx context.Context, bookerID int64, state booking.State, now time.Time, page queries.Page) ([]queries.BookingView, error) {
	builder := r.viewSelect().Where(squirrel.Eq{"b.booker_id": bookerID})
	return r.list(ctx, builder, state, now, page)
}

func (r *BookingRepository) FindByOwner(ctx context.Context, ownerID int64, state booking.State, now time.Time, page queries.Page) ([]queries.BookingView, error) {
	builder := r.viewSelect().Where(squirrel.Eq{"i.owner_id": ownerID})
	return r.list(ctx, builder, state, now, page)
}

// LastShotForItem returns a summary of the latest approved booking already
// begun by now, or nil when the item has none.
func (r *BookingRepository) LastShotForItem(ctx context.Context, itemID int64, now time.Time) (*queries.BookingShot, error) {
	builder := psql.Select("b.id", "b.booker_id").
		From("bookings b").
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Eq{"b.status": booking.StatusApproved.String()}).
		Where(squirrel.LtOrEq{"b.start_time": now}).
		OrderBy("b.end_time DESC").
		Limit(1)
	return r.shot(ctx, builder)
}

// NextShotForItem returns a summary of the soonest approved booking
// starting after now, or nil when there is none.
func (r *BookingRepository) NextShotForItem(ctx context.Context, itemID int64, now time.Time) (*queries.BookingShot, error) {
	builder := psql.Select("b.id", "b.booker_id").
		From("bookings b").
		Where(squirrel.Eq{"b.item_id": itemID}).
		Where(squirrel.Eq{"b.status": booking.StatusApproved.String()}).
		Where(squirrel.Gt{"b.start_time": now}).
		OrderBy("b.start_time ASC").
		Limit(1)
	return r.shot(ctx, builder)
}

func (r *BookingRepository) viewSelect() squirrel.SelectBuilder {
	return psql.Select(bookingViewColumns).
		From("bookings b").
		Join("items i ON b.item_id = i.id").
		Join("users u ON b.booker_id = u.id")
}

func (r *BookingRepository) list(ctx context.Context, builder squirrel.SelectBuilder, state booking.State, now time.Time, page queries.Page) ([]queries.BookingView, error) {
	for _, cond := range stateConditions(state, now) {
		builder = builder.Where(cond)
	}
	// start_time DESC for recency; id ASC keeps ties in insertion order.
	builder = builder.
		OrderBy("b.start_time DESC", "b.id ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	views := []queries.BookingView{}
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return views, nil
}

func (r *BookingRepository) shot(ctx context.Context, builder squirrel.SelectBuilder) (*queries.BookingShot, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking shot query", err)
	}

	var shot queries.BookingShot
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&shot.ID, &shot.BookerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find booking shot", err)
	}
	return &shot, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	if err := row.Scan(
		&view.ID, &view.Start, &view.End, &view.Status,
		&view.Booker.ID, &view.Booker.Name,
		&view.Item.ID, &view.Item.Name, &view.Item.OwnerID,
	); err != nil {
		return nil, err
	}
	return &view, nil
}
