package articles

import (
	"time"

	"github.com/google/uuid"
)

// Article maps to the article table, the health education library.
type Article struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Category    string    `db:"category" json:"category"`
	Summary     string    `db:"summary" json:"summary"`
	Body        string    `db:"body" json:"body"`
	ReadMinutes int       `db:"read_minutes" json:"read_minutes"`
	Featured    bool      `db:"featured" json:"featured"`
	PublishedAt time.Time `db:"published_at" json:"published_at"`
}
