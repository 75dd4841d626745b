package settings

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists preferences and bug reports.
type Repository interface {
	GetPreferences(ctx context.Context, userID uuid.UUID) (*Preferences, error)
	UpsertPreferences(ctx context.Context, p *Preferences) error
	CreateBugReport(ctx context.Context, r *BugReport) error
	ListBugReports(ctx context.Context, userID uuid.UUID) ([]*BugReport, error)
}
