package service

import (
	"context"
	"time"

	"mindpath/internal/model"
	"mindpath/internal/repository"
)

// MonitorService aggregates fallback usage for the ops dashboard. A rising
// fallback rate is the first sign of provider trouble or prompt drift.
type MonitorService struct {
	fallbackRepo repository.FallbackLogRepo
}

// NewMonitorService creates a new monitor service
func NewMonitorService(fallbackRepo repository.FallbackLogRepo) *MonitorService {
	return &MonitorService{fallbackRepo: fallbackRepo}
}

// Summary aggregates fallback counts per kind for one tool since a cutoff
func (s *MonitorService) Summary(ctx context.Context, toolID string, since time.Time) (*model.FallbackSummary, error) {
	entries, err := s.fallbackRepo.ListByTool(ctx, toolID, since, 1000)
	if err != nil {
		return nil, err
	}

	summary := &model.FallbackSummary{
		ToolID: toolID,
		ByKind: make(map[model.InsightKind]int),
	}
	for _, e := range entries {
		summary.Total++
		summary.ByKind[e.Kind]++
	}
	return summary, nil
}

// Recent returns the newest fallback events across all tools
func (s *MonitorService) Recent(ctx context.Context, limit int64) ([]*model.FallbackLogEntry, error) {
	return s.fallbackRepo.ListRecent(ctx, limit)
}
