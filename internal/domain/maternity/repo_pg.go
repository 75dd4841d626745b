package maternity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidapoint/vidapoint/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type profileRepoPG struct{ pool *pgxpool.Pool }

func NewProfileRepoPG(pool *pgxpool.Pool) ProfileRepository { return &profileRepoPG{pool: pool} }

func (r *profileRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const profileCols = `user_id, is_pregnant, last_menstruation_date, doctor_due_date, created_at, updated_at`

func (r *profileRepoPG) scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.UserID, &p.IsPregnant, &p.LastMenstruationDate, &p.DoctorDueDate,
		&p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *profileRepoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return r.scanProfile(r.conn(ctx).QueryRow(ctx,
		`SELECT `+profileCols+` FROM pregnancy_profile WHERE user_id = $1`, userID))
}

func (r *profileRepoPG) Upsert(ctx context.Context, p *Profile) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO pregnancy_profile (user_id, is_pregnant, last_menstruation_date, doctor_due_date)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (user_id) DO UPDATE SET
			is_pregnant = EXCLUDED.is_pregnant,
			last_menstruation_date = EXCLUDED.last_menstruation_date,
			doctor_due_date = EXCLUDED.doctor_due_date,
			updated_at = NOW()`,
		p.UserID, p.IsPregnant, p.LastMenstruationDate, p.DoctorDueDate)
	return err
}
