package articles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidapoint/vidapoint/internal/platform/db"
	"github.com/vidapoint/vidapoint/pkg/apperr"
	"github.com/vidapoint/vidapoint/pkg/pagination"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const articleCols = `id, title, category, summary, body, read_minutes, featured, published_at`

func (r *repoPG) List(ctx context.Context, category, search string, p pagination.Params) ([]*Article, int, error) {
	where := `WHERE ($1 = '' OR category = $1) AND ($2 = '' OR title ILIKE '%' || $2 || '%')`

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM article `+where, category, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+articleCols+` FROM article `+where+
			` ORDER BY published_at DESC LIMIT $3 OFFSET $4`,
		category, search, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Category, &a.Summary, &a.Body,
			&a.ReadMinutes, &a.Featured, &a.PublishedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, &a)
	}
	return list, total, rows.Err()
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Article, error) {
	var a Article
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+articleCols+` FROM article WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Category, &a.Summary, &a.Body,
		&a.ReadMinutes, &a.Featured, &a.PublishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("article not found")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) ListFeatured(ctx context.Context, limit int) ([]*Article, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+articleCols+` FROM article WHERE featured ORDER BY published_at DESC LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Category, &a.Summary, &a.Body,
			&a.ReadMinutes, &a.Featured, &a.PublishedAt); err != nil {
			return nil, err
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
