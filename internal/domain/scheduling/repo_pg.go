package scheduling

import (
	"context"
	"errors"
	"time"

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

// --- booking store ---

type bookingStorePG struct{ pool *pgxpool.Pool }

func NewBookingStorePG(pool *pgxpool.Pool) BookingStore { return &bookingStorePG{pool: pool} }

func (s *bookingStorePG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return s.pool
}

func (s *bookingStorePG) BookedTimes(ctx context.Context, ownerCode string, date time.Time) ([]string, error) {
	rows, err := s.conn(ctx).Query(ctx,
		`SELECT slot_label FROM booking_entry WHERE owner_code = $1 AND slot_date = $2`,
		ownerCode, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	sortByCatalog(slots)
	return slots, rows.Err()
}

// Reserve relies on the unique index over (owner_code, slot_date,
// slot_label). The losing writer's insert affects zero rows.
func (s *bookingStorePG) Reserve(ctx context.Context, ownerCode string, date time.Time, slot string, appointmentID uuid.UUID) error {
	tag, err := s.conn(ctx).Exec(ctx, `
		INSERT INTO booking_entry (owner_code, slot_date, slot_label, appointment_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_code, slot_date, slot_label) DO NOTHING`,
		ownerCode, date, slot, appointmentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotTaken
	}
	return nil
}

func (s *bookingStorePG) Release(ctx context.Context, ownerCode string, date time.Time, slot string) error {
	_, err := s.conn(ctx).Exec(ctx,
		`DELETE FROM booking_entry WHERE owner_code = $1 AND slot_date = $2 AND slot_label = $3`,
		ownerCode, date, slot)
	return err
}

// --- appointments ---

type appointmentRepoPG struct{ pool *pgxpool.Pool }

func NewAppointmentRepoPG(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepoPG{pool: pool}
}

func (r *appointmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const appointmentCols = `id, user_id, doctor_code, clinic_code, appointment_type, title,
	slot_date, slot_label, status, notes, created_at, updated_at`

func (r *appointmentRepoPG) scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.UserID, &a.DoctorCode, &a.ClinicCode, &a.Type, &a.Title,
		&a.Date, &a.Slot, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointment (id, user_id, doctor_code, clinic_code, appointment_type,
			title, slot_date, slot_label, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at`,
		a.ID, a.UserID, a.DoctorCode, a.ClinicCode, a.Type,
		a.Title, a.Date, a.Slot, a.Status, a.Notes,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	a, err := r.scanAppointment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM appointment WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("appointment not found")
	}
	return a, err
}

// filterClause translates a list filter into SQL against the current day.
func filterClause(filter string) string {
	switch filter {
	case FilterUpcoming:
		return ` AND slot_date >= CURRENT_DATE AND status IN ('pending','confirmed')`
	case FilterMissed:
		return ` AND status = 'missed'`
	case FilterPast:
		return ` AND (slot_date < CURRENT_DATE OR status IN ('completed','cancelled'))`
	default:
		return ``
	}
}

func (r *appointmentRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, filter string, p pagination.Params) ([]*Appointment, int, error) {
	where := `WHERE user_id = $1` + filterClause(filter)

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointment `+where, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+appointmentCols+` FROM appointment `+where+
			` ORDER BY slot_date, slot_label LIMIT $2 OFFSET $3`,
		userID, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []*Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.UserID, &a.DoctorCode, &a.ClinicCode, &a.Type, &a.Title,
			&a.Date, &a.Slot, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		list = append(list, &a)
	}
	return list, total, rows.Err()
}

func (r *appointmentRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE appointment SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("appointment not found")
	}
	return nil
}
