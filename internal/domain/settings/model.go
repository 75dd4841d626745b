package settings

import (
	"time"

	"github.com/google/uuid"
)

// Preferences maps to the notification_preference table, one row per user.
// Everything defaults to on.
type Preferences struct {
	UserID                uuid.UUID `db:"user_id" json:"user_id"`
	SMS                   bool      `db:"sms" json:"sms"`
	Email                 bool      `db:"email" json:"email"`
	AppointmentReminders  bool      `db:"appointment_reminders" json:"appointment_reminders"`
	HealthTips            bool      `db:"health_tips" json:"health_tips"`
	RecordSharingRequests bool      `db:"record_sharing_requests" json:"record_sharing_requests"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultPreferences returns the opt-out-later defaults for a new user.
func DefaultPreferences(userID uuid.UUID) *Preferences {
	return &Preferences{
		UserID:                userID,
		SMS:                   true,
		Email:                 true,
		AppointmentReminders:  true,
		HealthTips:            true,
		RecordSharingRequests: true,
	}
}

// Bug report statuses.
const (
	BugStatusOpen   = "open"
	BugStatusClosed = "closed"
)

// BugReport maps to the bug_report table.
type BugReport struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Description string    `db:"description" json:"description"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
