package records

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

const prenatalCols = `id, user_id, visit_date, gestational_week, weight_kg, blood_pressure,
	fetal_heart_rate, fundal_height_cm, notes, provider_name, created_at`

func (r *repoPG) ListPrenatal(ctx context.Context, userID uuid.UUID) ([]*PrenatalRecord, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+prenatalCols+` FROM prenatal_record WHERE user_id = $1 ORDER BY visit_date DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*PrenatalRecord
	for rows.Next() {
		var p PrenatalRecord
		if err := rows.Scan(&p.ID, &p.UserID, &p.VisitDate, &p.GestationalWeek, &p.WeightKG,
			&p.BloodPressure, &p.FetalHeartRate, &p.FundalHeightCM, &p.Notes,
			&p.ProviderName, &p.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *repoPG) GetPrenatal(ctx context.Context, id uuid.UUID) (*PrenatalRecord, error) {
	var p PrenatalRecord
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+prenatalCols+` FROM prenatal_record WHERE id = $1`, id,
	).Scan(&p.ID, &p.UserID, &p.VisitDate, &p.GestationalWeek, &p.WeightKG,
		&p.BloodPressure, &p.FetalHeartRate, &p.FundalHeightCM, &p.Notes,
		&p.ProviderName, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("prenatal record not found")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) CreatePrenatal(ctx context.Context, p *PrenatalRecord) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO prenatal_record (id, user_id, visit_date, gestational_week, weight_kg,
			blood_pressure, fetal_heart_rate, fundal_height_cm, notes, provider_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at`,
		p.ID, p.UserID, p.VisitDate, p.GestationalWeek, p.WeightKG,
		p.BloodPressure, p.FetalHeartRate, p.FundalHeightCM, p.Notes, p.ProviderName,
	).Scan(&p.CreatedAt)
}

const labCols = `id, user_id, test_name, test_date, status, result_values, provider_name, created_at`

func (r *repoPG) ListLabResults(ctx context.Context, userID uuid.UUID) ([]*LabResult, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+labCols+` FROM lab_result WHERE user_id = $1 ORDER BY test_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*LabResult
	for rows.Next() {
		var l LabResult
		if err := rows.Scan(&l.ID, &l.UserID, &l.TestName, &l.TestDate, &l.Status,
			&l.Values, &l.ProviderName, &l.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *repoPG) GetLabResult(ctx context.Context, id uuid.UUID) (*LabResult, error) {
	var l LabResult
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+labCols+` FROM lab_result WHERE id = $1`, id,
	).Scan(&l.ID, &l.UserID, &l.TestName, &l.TestDate, &l.Status,
		&l.Values, &l.ProviderName, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("lab result not found")
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repoPG) CreateLabResult(ctx context.Context, l *LabResult) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO lab_result (id, user_id, test_name, test_date, status, result_values, provider_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at`,
		l.ID, l.UserID, l.TestName, l.TestDate, l.Status, l.Values, l.ProviderName,
	).Scan(&l.CreatedAt)
}

const vaccinationCols = `id, user_id, vaccine, dose_label, given_date, lot_number, site,
	administered_by, created_at`

func (r *repoPG) ListVaccinations(ctx context.Context, userID uuid.UUID) ([]*Vaccination, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+vaccinationCols+` FROM vaccination WHERE user_id = $1 ORDER BY given_date DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*Vaccination
	for rows.Next() {
		var v Vaccination
		if err := rows.Scan(&v.ID, &v.UserID, &v.Vaccine, &v.DoseLabel, &v.GivenDate,
			&v.LotNumber, &v.Site, &v.AdministeredBy, &v.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

func (r *repoPG) CreateVaccination(ctx context.Context, v *Vaccination) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO vaccination (id, user_id, vaccine, dose_label, given_date, lot_number,
			site, administered_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at`,
		v.ID, v.UserID, v.Vaccine, v.DoseLabel, v.GivenDate, v.LotNumber,
		v.Site, v.AdministeredBy,
	).Scan(&v.CreatedAt)
}
