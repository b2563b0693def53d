package usecase

import (
	"context"
	"time"

	"newsroom/internal/domain"
	"newsroom/internal/ports"
)

// StatsService maintains the visit counter. The shell calls RecordVisit at
// most once per user session.
type StatsService struct {
	documents ports.Documents
	now       func() time.Time
}

// NewStatsService wires the document layer.
func NewStatsService(documents ports.Documents) *StatsService {
	return &StatsService{documents: documents, now: time.Now}
}

// Current returns the persisted counter.
func (s *StatsService) Current(ctx context.Context) domain.Stats {
	stats, _ := s.documents.LoadStats(ctx)
	return stats
}

// RecordVisit increments the counter and stamps the update time. Failure to
// persist is non-fatal; the visit counter is best effort.
func (s *StatsService) RecordVisit(ctx context.Context) (domain.Stats, error) {
	stats, _ := s.documents.LoadStats(ctx)
	stats.Visits++
	stats.LastUpdated = s.now()
	if err := s.documents.SaveStats(ctx, stats, "visit counter update"); err != nil {
		return stats, err
	}
	return stats, nil
}
