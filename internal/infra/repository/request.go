package repository

import (
	"context"
	"errors"
	"time"

	"github.com/DanSBol/shareit/internal/domain/request"
	"github.com/DanSBol/shareit/internal/infra"
	"github.com/DanSBol/shareit/internal/infra/db"
	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

func (r *RequestRepository) Create(ctx context.Context, tx db.DBTX, req *request.Request, createdAt time.Time) (int64, error) {
	query, args, err := psql.Insert("requests").
		Columns("requestor_id", "description", "created_at").
		Values(req.RequestorID(), req.Description(), createdAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build create request query", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return 0, infra.WrapRepoErr("request references missing user", err, infra.KindForeignKeyViolated)
		}
		return 0, infra.WrapRepoErr("failed to create request", err)
	}
	return id, nil
}

func (r *RequestRepository) Exists(ctx context.Context, id int64) (bool, error) {
	sub, args, err := psql.Select("1").
		From("requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build request exists query", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check request", err)
	}
	return exists, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id int64) (*queries.RequestView, error) {
	query, args, err := psql.Select("id", "description", "created_at").
		From("requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request view query", err)
	}

	var view queries.RequestView
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&view.ID, &view.Description, &view.Created,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find request", err)
	}
	view.Items = []queries.ItemRef{}
	return &view, nil
}

func (r *RequestRepository) FindByRequestor(ctx context.Context, requestorID int64) ([]queries.RequestView, error) {
	builder := psql.Select("id", "description", "created_at").
		From("requests").
		Where(squirrel.Eq{"requestor_id": requestorID}).
		OrderBy("created_at DESC", "id ASC")
	return r.listViews(ctx, builder)
}

func (r *RequestRepository) FindOthers(ctx context.Context, userID int64, page queries.Page) ([]queries.RequestView, error) {
	builder := psql.Select("id", "description", "created_at").
		From("requests").
		Where(squirrel.NotEq{"requestor_id": userID}).
		OrderBy("created_at DESC", "id ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset))
	return r.listViews(ctx, builder)
}

func (r *RequestRepository) listViews(ctx context.Context, builder squirrel.SelectBuilder) ([]queries.RequestView, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build request list query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests", err)
	}
	defer rows.Close()

	views := []queries.RequestView{}
	for rows.Next() {
		var view queries.RequestView
		if err := rows.Scan(&view.ID, &view.Description, &view.Created); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request", err)
		}
		view.Items = []queries.ItemRef{}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read request rows", err)
	}
	return views, nil
}
