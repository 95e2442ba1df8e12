package repository

import (
	"context"
	"time"

	"github.com/DanSBol/shareit/internal/infra"
	"github.com/DanSBol/shareit/internal/infra/db"
	"github.com/DanSBol/shareit/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

// Create inserts the comment and returns the view with the author name
// already resolved, so the caller does not need a second round trip.
func (r *CommentRepository) Create(ctx context.Context, tx db.DBTX, itemID, authorID int64, text string, createdAt time.Time) (*queries.CommentView, error) {
	query, args, err := psql.Insert("comments").
		Columns("item_id", "author_id", "text", "created_at").
		Values(itemID, authorID, text, createdAt).
		Suffix("RETURNING id, text, created_at, (SELECT name FROM users WHERE id = author_id)").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build create comment query", err)
	}

	var view queries.CommentView
	if err := tx.QueryRow(ctx, query, args...).Scan(
		&view.ID, &view.Text, &view.Created, &view.AuthorName,
	); err != nil {
		if isForeignKeyViolation(err) {
			return nil, infra.WrapRepoErr("comment references missing row", err, infra.KindForeignKeyViolated)
		}
		return nil, infra.WrapRepoErr("failed to create comment", err)
	}
	return &view, nil
}

func (r *CommentRepository) FindByItem(ctx context.Context, itemID int64) ([]queries.CommentView, error) {
	query, args, err := psql.Select("c.id", "c.text", "u.name", "c.created_at").
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where(squirrel.Eq{"c.item_id": itemID}).
		OrderBy("c.id ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build comments query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list comments", err)
	}
	defer rows.Close()

	views := []queries.CommentView{}
	for rows.Next() {
		var view queries.CommentView
		if err := rows.Scan(&view.ID, &view.Text, &view.AuthorName, &view.Created); err != nil {
			return nil, infra.WrapRepoErr("failed to scan comment", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read comment rows", err)
	}
	return views, nil
}
