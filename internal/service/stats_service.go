package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"miklean/internal/domain"
	"miklean/internal/port"
)

// StatsService provides the dashboard summary.
type StatsService interface {
	GetStats(ctx context.Context, businessID uuid.UUID) (*domain.Stats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
	clock     Clock
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository, clock Clock) StatsService {
	return &statsService{statsRepo: statsRepo, clock: clock}
}

// GetStats counts against the business's local day and month.
func (s *statsService) GetStats(ctx context.Context, businessID uuid.UUID) (*domain.Stats, error) {
	now := s.clock()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return s.statsRepo.GetBusinessStats(ctx, businessID, s.clock.Today(), monthStart)
}
