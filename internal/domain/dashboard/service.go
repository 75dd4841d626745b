package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vidapoint/vidapoint/internal/domain/articles"
	"github.com/vidapoint/vidapoint/internal/domain/maternity"
	"github.com/vidapoint/vidapoint/internal/domain/scheduling"
	"github.com/vidapoint/vidapoint/pkg/pagination"
)

// The dashboard reads across domains through narrow interfaces so each
// source stays independently testable.

type ProgressSource interface {
	Progress(ctx context.Context, userID uuid.UUID, now time.Time) (*maternity.Progress, error)
}

type AppointmentSource interface {
	ListByUser(ctx context.Context, userID uuid.UUID, filter string, p pagination.Params) ([]*scheduling.Appointment, int, error)
}

type RecordCounter interface {
	Counts(ctx context.Context, userID uuid.UUID) (map[string]int, error)
}

type SharingCounter interface {
	PendingCount(ctx context.Context, userID uuid.UUID) (int, error)
}

type UnreadCounter interface {
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
}

type ArticleSource interface {
	Featured(ctx context.Context) ([]*articles.Article, error)
}

// Summary is the home-screen payload.
type Summary struct {
	Progress             *maternity.Progress       `json:"progress"`
	UpcomingAppointments []*scheduling.Appointment `json:"upcoming_appointments"`
	RecordCounts         map[string]int            `json:"record_counts"`
	PendingSharing       int                       `json:"pending_sharing"`
	UnreadNotifications  int                       `json:"unread_notifications"`
	FeaturedArticles     []*articles.Article       `json:"featured_articles"`
}

type Service struct {
	progress     ProgressSource
	appointments AppointmentSource
	records      RecordCounter
	sharing      SharingCounter
	unread       UnreadCounter
	articles     ArticleSource
}

func NewService(progress ProgressSource, appointments AppointmentSource, records RecordCounter,
	sharing SharingCounter, unread UnreadCounter, articleSource ArticleSource) *Service {
	return &Service{
		progress:     progress,
		appointments: appointments,
		records:      records,
		sharing:      sharing,
		unread:       unread,
		articles:     articleSource,
	}
}

// Summary assembles the dashboard. Individual source failures degrade to
// empty sections rather than failing the whole screen; only the pregnancy
// progress is load-bearing.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID, now time.Time) (*Summary, error) {
	progress, err := s.progress.Progress(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	out := &Summary{Progress: progress, RecordCounts: map[string]int{}}

	upcoming, _, err := s.appointments.ListByUser(ctx, userID, scheduling.FilterUpcoming,
		pagination.Params{Limit: 3, Offset: 0})
	if err != nil {
		log.Warn().Err(err).Msg("dashboard: appointments unavailable")
	} else {
		out.UpcomingAppointments = upcoming
	}

	if counts, err := s.records.Counts(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("dashboard: record counts unavailable")
	} else {
		out.RecordCounts = counts
	}

	if pending, err := s.sharing.PendingCount(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("dashboard: sharing count unavailable")
	} else {
		out.PendingSharing = pending
	}

	if unread, err := s.unread.UnreadCount(ctx, userID); err != nil {
		log.Warn().Err(err).Msg("dashboard: unread count unavailable")
	} else {
		out.UnreadNotifications = unread
	}

	if featured, err := s.articles.Featured(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard: articles unavailable")
	} else {
		out.FeaturedArticles = featured
	}

	return out, nil
}
