package repository

import (
	"context"
	"errors"

	"github.com/DanSBol/shareit/internal/domain/item"
	"github.com/DanSBol/shareit/internal/infra"
	"github.com/DanSBol/shareit/internal/infra/db"
	"github.com/DanSBol/shareit/internal/usecase/commands"
	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func (r *ItemRepository) Create(ctx context.Context, tx db.DBTX, it *item.Item) (int64, error) {
	query, args, err := psql.Insert("items").
		Columns("owner_id", "name", "description", "available", "request_id").
		Values(it.OwnerID(), it.Name(), it.Description(), it.Available(), it.RequestID()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build create item query", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return 0, infra.WrapRepoErr("item references missing row", err, infra.KindForeignKeyViolated)
		}
		return 0, infra.WrapRepoErr("failed to create item", err)
	}
	return id, nil
}

func (r *ItemRepository) Update(ctx context.Context, tx db.DBTX, id int64, patch commands.ItemPatch) error {
	if patch.Name == nil && patch.Description == nil && patch.Available == nil {
		return nil
	}

	builder := psql.Update("items").Where(squirrel.Eq{"id": id})
	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		builder = builder.Set("description", *patch.Description)
	}
	if patch.Available != nil {
		builder = builder.Set("available", *patch.Available)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build update item query", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update item", err)
	}
	if ct.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, tx db.DBTX, id int64) error {
	query, args, err := psql.Delete("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build delete item query", err)
	}

	ct, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to delete item", err)
	}
	if ct.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ItemRepository) FindSnapshot(ctx context.Context, id int64) (*commands.ItemSnapshot, error) {
	query, args, err := psql.Select("id", "owner_id", "name", "available").
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item snapshot query", err)
	}

	var snapshot commands.ItemSnapshot
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&snapshot.ID, &snapshot.OwnerID, &snapshot.Name, &snapshot.Available,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item", err)
	}
	return &snapshot, nil
}

const itemViewColumns = "id, owner_id, name, description, available, request_id"

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*queries.ItemView, error) {
	query, args, err := psql.Select(itemViewColumns).
		From("items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item view query", err)
	}

	view, err := scanItemView(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item", err)
	}
	return view, nil
}

func (r *ItemRepository) FindByOwner(ctx context.Context, ownerID int64, page queries.Page) ([]queries.ItemView, error) {
	builder := psql.Select(itemViewColumns).
		From("items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset))
	return r.listViews(ctx, builder)
}

// Search matches available items whose name or description contains the
// text, case-insensitively.
func (r *ItemRepository) Search(ctx context.Context, text string, page queries.Page) ([]queries.ItemView, error) {
	pattern := "%" + text + "%"
	builder := psql.Select(itemViewColumns).
		From("items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("id ASC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset))
	return r.listViews(ctx, builder)
}

func (r *ItemRepository) FindByRequest(ctx context.Context, requestID int64) ([]queries.ItemRef, error) {
	query, args, err := psql.Select("id", "name", "owner_id").
		From("items").
		Where(squirrel.Eq{"request_id": requestID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build items by request query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items by request", err)
	}
	defer rows.Close()

	refs := []queries.ItemRef{}
	for rows.Next() {
		var ref queries.ItemRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.OwnerID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan item ref", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read item rows", err)
	}
	return refs, nil
}

func (r *ItemRepository) listViews(ctx context.Context, builder squirrel.SelectBuilder) ([]queries.ItemView, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build item list query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items", err)
	}
	defer rows.Close()

	views := []queries.ItemView{}
	for rows.Next() {
		view, err := scanItemView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan item", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read item rows", err)
	}
	return views, nil
}

func scanItemView(row pgx.Row) (*queries.ItemView, error) {
	var view queries.ItemView
	if err := row.Scan(
		&view.ID, &view.OwnerID, &view.Name, &view.Description,
		&view.Available, &view.RequestID,
	); err != nil {
		return nil, err
	}
	view.Comments = []queries.CommentView{}
	return &view, nil
}
