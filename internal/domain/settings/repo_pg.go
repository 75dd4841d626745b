package settings

import (
	"context"
	"errors"

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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) GetPreferences(ctx context.Context, userID uuid.UUID) (*Preferences, error) {
	var p Preferences
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT user_id, sms, email, appointment_reminders, health_tips,
			record_sharing_requests, updated_at
		FROM notification_preference WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.SMS, &p.Email, &p.AppointmentReminders, &p.HealthTips,
		&p.RecordSharingRequests, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// No row yet means the user never changed anything.
		return DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) UpsertPreferences(ctx context.Context, p *Preferences) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO notification_preference (user_id, sms, email, appointment_reminders,
			health_tips, record_sharing_requests)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (user_id) DO UPDATE SET
			sms = EXCLUDED.sms,
			email = EXCLUDED.email,
			appointment_reminders = EXCLUDED.appointment_reminders,
			health_tips = EXCLUDED.health_tips,
			record_sharing_requests = EXCLUDED.record_sharing_requests,
			updated_at = NOW()`,
		p.UserID, p.SMS, p.Email, p.AppointmentReminders, p.HealthTips, p.RecordSharingRequests)
	return err
}

func (r *repoPG) CreateBugReport(ctx context.Context, rep *BugReport) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO bug_report (id, user_id, description, status)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at`,
		rep.ID, rep.UserID, rep.Description, rep.Status,
	).Scan(&rep.CreatedAt)
}

func (r *repoPG) ListBugReports(ctx context.Context, userID uuid.UUID) ([]*BugReport, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, user_id, description, status, created_at
		FROM bug_report WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*BugReport
	for rows.Next() {
		var rep BugReport
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.Description, &rep.Status,
			&rep.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &rep)
	}
	return list, rows.Err()
}
