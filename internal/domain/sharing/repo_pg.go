package sharing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidapoint/vidapoint/internal/platform/db"
	"github.com/vidapoint/vidapoint/pkg/apperr"
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

const requestCols = `id, user_id, facility_name, purpose, record_types, access_level,
	duration, status, consent_method, consent_message, urgent, requested_at, decided_at,
	expires_at`

func scanRequest(row pgx.Row) (*Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.UserID, &req.FacilityName, &req.Purpose, &req.RecordTypes,
		&req.AccessLevel, &req.Duration, &req.Status, &req.ConsentMethod, &req.ConsentMessage,
		&req.Urgent, &req.RequestedAt, &req.DecidedAt, &req.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repoPG) Create(ctx context.Context, req *Request) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO sharing_request (id, user_id, facility_name, purpose, record_types,
			access_level, duration, status, consent_message, urgent)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING requested_at`,
		req.ID, req.UserID, req.FacilityName, req.Purpose, req.RecordTypes,
		req.AccessLevel, req.Duration, req.Status, req.ConsentMessage, req.Urgent,
	).Scan(&req.RequestedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Request, error) {
	req, err := scanRequest(r.conn(ctx).QueryRow(ctx,
		`SELECT `+requestCols+` FROM sharing_request WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("sharing request not found")
	}
	return req, err
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, status string) ([]*Request, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+requestCols+` FROM sharing_request
		 WHERE user_id = $1 AND ($2 = '' OR status = $2)
		 ORDER BY requested_at DESC`,
		userID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.UserID, &req.FacilityName, &req.Purpose,
			&req.RecordTypes, &req.AccessLevel, &req.Duration, &req.Status,
			&req.ConsentMethod, &req.ConsentMessage, &req.Urgent, &req.RequestedAt,
			&req.DecidedAt, &req.ExpiresAt); err != nil {
			return nil, err
		}
		list = append(list, &req)
	}
	return list, rows.Err()
}

func (r *repoPG) CountPending(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM sharing_request WHERE user_id = $1 AND status = 'pending'`,
		userID).Scan(&count)
	return count, err
}

func (r *repoPG) Update(ctx context.Context, req *Request) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE sharing_request SET status = $2, consent_method = $3, decided_at = $4,
			expires_at = $5
		WHERE id = $1`,
		req.ID, req.Status, req.ConsentMethod, req.DecidedAt, req.ExpiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("sharing request not found")
	}
	return nil
}
