package notifications

import (
	"time"

	"github.com/google/uuid"
)

// Feed entry kinds.
const (
	KindAppointment = "appointment"
	KindSharing     = "sharing"
	KindRecord      = "record"
	KindArticle     = "article"
	KindMissed      = "missed"
)

var validKinds = map[string]bool{
	KindAppointment: true,
	KindSharing:     true,
	KindRecord:      true,
	KindArticle:     true,
	KindMissed:      true,
}

// Notification maps to the notification table, the in-app feed.
type Notification struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Kind      string    `db:"kind" json:"kind"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
