package services

import (
	"context"
	"runtime"
	"time"

	"github.com/zatekoja/satisfaction-feedback/internal/domain/entities"
	"github.com/zatekoja/satisfaction-feedback/internal/domain/repositories"
	"github.com/zatekoja/satisfaction-feedback/internal/infrastructure/observability"
)

// StoreInfo describes the physical record store.
type StoreInfo interface {
	Driver() string
	Path() string
	SizeBytes() *int64
}

// StatusService serves the public summary, health probe and admin system
// panel.
type StatusService struct {
	repo   repositories.FeedbackRepository
	store  StoreInfo
	mirror *MirrorNotifier
	clock  Clock
}

// NewStatusService creates a new status service
func NewStatusService(repo repositories.FeedbackRepository, store StoreInfo, mirror *MirrorNotifier, clock Clock) *StatusService {
	return &StatusService{repo: repo, store: store, mirror: mirror, clock: clock}
}

// PublicSummary returns today's counts and the grand total.
func (s *StatusService) PublicSummary(ctx context.Context) (*entities.PublicSummary, error) {
	today := s.clock.Today()

	counts, err := s.repo.CountByLevel(ctx, repositories.RecordFilter{Date: today})
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, repositories.RecordFilter{})
	if err != nil {
		return nil, err
	}

	lastID, err := s.repo.MaxID(ctx)
	if err != nil {
		return nil, err
	}

	return &entities.PublicSummary{
		Date:            today,
		Today:           counts,
		TodayTotal:      counts.Sum(),
		Total:           total,
		LastID:          lastID,
		MirrorAvailable: s.mirror.Status().Available,
	}, nil
}

// Health pings the record store. It never returns an error; failures are
// reported in the payload.
func (s *StatusService) Health(ctx context.Context) *entities.HealthReport {
	db := s.databaseStatus()
	if err := s.repo.Ping(ctx); err != nil {
		msg := err.Error()
		db.Error = &msg
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Health check: record store unreachable")
	} else {
		db.OK = true
	}
	db.Path = ""
	db.SizeBytes = nil

	return &entities.HealthReport{
		OK:        db.OK,
		Time:      s.clock.Now().Format(time.RFC3339),
		GoVersion: runtime.Version(),
		Database:  db,
		Mirror:    s.mirror.Status(),
	}
}

// SystemInfo returns the admin system panel.
func (s *StatusService) SystemInfo(ctx context.Context, admin *entities.AdminSession) (*entities.SystemInfo, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, repositories.RecordFilter{})
	if err != nil {
		return nil, err
	}

	lastID, err := s.repo.MaxID(ctx)
	if err != nil {
		return nil, err
	}

	db := s.databaseStatus()
	db.OK = true

	return &entities.SystemInfo{
		Time:      s.clock.Now().Format(time.RFC3339),
		GoVersion: runtime.Version(),
		Total:     total,
		LastID:    lastID,
		Database:  db,
		Mirror:    s.mirror.Status(),
		Admin:     entities.AdminInfo{Email: admin.Email},
	}, nil
}

func (s *StatusService) databaseStatus() entities.DatabaseStatus {
	if s.store == nil {
		return entities.DatabaseStatus{}
	}
	return entities.DatabaseStatus{
		Driver:    s.store.Driver(),
		Path:      s.store.Path(),
		SizeBytes: s.store.SizeBytes(),
	}
}
