package clinics

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

const clinicCols = `id, code, name, address, phone, hours, open_24h, rating, services,
	latitude, longitude, created_at`

func scanClinic(row pgx.Row) (*Clinic, error) {
	var c Clinic
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Address, &c.Phone, &c.Hours, &c.Open24h,
		&c.Rating, &c.Services, &c.Latitude, &c.Longitude, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repoPG) ListClinics(ctx context.Context, search string, p pagination.Params) ([]*Clinic, int, error) {
	// Matches on name or any offered service, case-insensitive.
	where := `WHERE ($1 = '' OR name ILIKE '%' || $1 || '%'
		OR EXISTS (SELECT 1 FROM unnest(services) s WHERE s ILIKE '%' || $1 || '%'))`

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM clinic `+where, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+clinicCols+` FROM clinic `+where+
			` ORDER BY rating DESC, name LIMIT $2 OFFSET $3`,
		search, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*Clinic
	for rows.Next() {
		var c Clinic
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Address, &c.Phone, &c.Hours, &c.Open24h,
			&c.Rating, &c.Services, &c.Latitude, &c.Longitude, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

func (r *repoPG) GetClinic(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	c, err := scanClinic(r.conn(ctx).QueryRow(ctx,
		`SELECT `+clinicCols+` FROM clinic WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("clinic not found")
	}
	return c, err
}

func (r *repoPG) GetClinicByCode(ctx context.Context, code string) (*Clinic, error) {
	c, err := scanClinic(r.conn(ctx).QueryRow(ctx,
		`SELECT `+clinicCols+` FROM clinic WHERE code = $1`, code))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("clinic not found")
	}
	return c, err
}

const doctorCols = `id, code, name, specialty, clinic_id, created_at`

func (r *repoPG) ListDoctors(ctx context.Context, clinicID uuid.UUID) ([]*Doctor, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE clinic_id = $1 ORDER BY name`, clinicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.Specialty, &d.ClinicID, &d.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *repoPG) GetDoctorByCode(ctx context.Context, code string) (*Doctor, error) {
	var d Doctor
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+doctorCols+` FROM doctor WHERE code = $1`, code,
	).Scan(&d.ID, &d.Code, &d.Name, &d.Specialty, &d.ClinicID, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("doctor not found")
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
