package maternity

import (
	"time"

	"github.com/google/uuid"
)

// Profile maps to the pregnancy_profile table. At most one row per user.
type Profile struct {
	UserID               uuid.UUID  `db:"user_id" json:"user_id"`
	IsPregnant           bool       `db:"is_pregnant" json:"is_pregnant"`
	LastMenstruationDate *time.Time `db:"last_menstruation_date" json:"last_menstruation_date,omitempty"`
	DoctorDueDate        *time.Time `db:"doctor_due_date" json:"doctor_due_date,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// Progress is the derived pregnancy state returned to clients.
type Progress struct {
	Week      int        `json:"week"`
	Trimester string     `json:"trimester"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}
