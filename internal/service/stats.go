package service

import (
	"context"
	"time"

	"github.com/vaultpass/passgen-go/internal/model"
)

// StatsReader aggregates audit events.
type StatsReader interface {
	Stats(ctx context.Context, since *time.Time) (model.Stats, error)
}

// StatsService exposes usage statistics.
type StatsService struct {
	repo StatsReader
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo StatsReader) *StatsService {
	return &StatsService{repo: repo}
}

// Stats returns aggregates for events after since, or all events when since is nil.
func (s *StatsService) Stats(ctx context.Context, since *time.Time) (model.Stats, error) {
	return s.repo.Stats(ctx, since)
}
