package identity

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

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository { return &userRepoPG{pool: pool} }

func (r *userRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const userCols = `id, full_name, email, phone, id_number, address, date_of_birth,
	number_of_kids, youngest_child_dob, had_prenatal_checkup, previous_checkup_location,
	height_cm, weight_kg, blood_type, phone_verified, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Phone, &u.IDNumber, &u.Address,
		&u.DateOfBirth, &u.NumberOfKids, &u.YoungestChildDOB, &u.HadPrenatalCheckup,
		&u.PreviousCheckupLocation, &u.HeightCM, &u.WeightKG, &u.BloodType,
		&u.PhoneVerified, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO app_user (id, full_name, email, phone, id_number, address, date_of_birth,
			number_of_kids, youngest_child_dob, had_prenatal_checkup, previous_checkup_location,
			height_cm, weight_kg, blood_type, phone_verified, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING created_at, updated_at`,
		u.ID, u.FullName, u.Email, u.Phone, u.IDNumber, u.Address, u.DateOfBirth,
		u.NumberOfKids, u.YoungestChildDOB, u.HadPrenatalCheckup, u.PreviousCheckupLocation,
		u.HeightCM, u.WeightKG, u.BloodType, u.PhoneVerified, u.PasswordHash,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}

func (r *userRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	return u, err
}

func (r *userRepoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE lower(email) = lower($1)`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	return u, err
}

func (r *userRepoPG) GetByPhone(ctx context.Context, phone string) (*User, error) {
	u, err := scanUser(r.conn(ctx).QueryRow(ctx,
		`SELECT `+userCols+` FROM app_user WHERE phone = $1`, phone))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	return u, err
}

func (r *userRepoPG) Update(ctx context.Context, u *User) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE app_user SET full_name = $2, email = $3, phone = $4, id_number = $5,
			address = $6, date_of_birth = $7, number_of_kids = $8, youngest_child_dob = $9,
			had_prenatal_checkup = $10, previous_checkup_location = $11, height_cm = $12,
			weight_kg = $13, blood_type = $14, phone_verified = $15, password_hash = $16,
			updated_at = NOW()
		WHERE id = $1`,
		u.ID, u.FullName, u.Email, u.Phone, u.IDNumber, u.Address, u.DateOfBirth,
		u.NumberOfKids, u.YoungestChildDOB, u.HadPrenatalCheckup, u.PreviousCheckupLocation,
		u.HeightCM, u.WeightKG, u.BloodType, u.PhoneVerified, u.PasswordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user not found")
	}
	return nil
}

type otpStorePG struct{ pool *pgxpool.Pool }

func NewOTPStorePG(pool *pgxpool.Pool) OTPStore { return &otpStorePG{pool: pool} }

func (s *otpStorePG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return s.pool
}

func (s *otpStorePG) Upsert(ctx context.Context, v *PhoneVerification) error {
	_, err := s.conn(ctx).Exec(ctx, `
		INSERT INTO phone_verification (phone, code, expires_at, attempts, verified)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (phone) DO UPDATE SET
			code = EXCLUDED.code,
			expires_at = EXCLUDED.expires_at,
			attempts = EXCLUDED.attempts,
			verified = EXCLUDED.verified,
			updated_at = NOW()`,
		v.Phone, v.Code, v.ExpiresAt, v.Attempts, v.Verified)
	return err
}

func (s *otpStorePG) Get(ctx context.Context, phone string) (*PhoneVerification, error) {
	var v PhoneVerification
	err := s.conn(ctx).QueryRow(ctx, `
		SELECT phone, code, expires_at, attempts, verified, updated_at
		FROM phone_verification WHERE phone = $1`, phone,
	).Scan(&v.Phone, &v.Code, &v.ExpiresAt, &v.Attempts, &v.Verified, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("no verification in progress for this phone")
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
