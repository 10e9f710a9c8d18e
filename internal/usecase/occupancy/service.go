package occupancy

import (
	"context"
	"time"

	domain "ontwatch/internal/domain/occupancy"
)

// Service records occupancy snapshots and trend points delivered by
// the collector.
type Service struct {
	log     domain.LogRepository
	history domain.HistoryRepository
}

func NewService(log domain.LogRepository, history domain.HistoryRepository) *Service {
	return &Service{log: log, history: history}
}

// RecordHistory appends one trend point with the current session count.
func (s *Service) RecordHistory(ctx context.Context, sessionCount int) (*domain.HistoryPoint, error) {
	point := domain.HistoryPoint{
		Timestamp:    time.Now().Format(time.RFC3339),
		SessionCount: sessionCount,
	}

	if err := s.history.Append(ctx, point); err != nil {
		return nil, err
	}

	return &point, nil
}

// History returns the full trend series.
func (s *Service) History(ctx context.Context) ([]domain.HistoryPoint, error) {
	return s.history.Load(ctx)
}

// LogSessions appends one full occupancy snapshot to the log.
func (s *Service) LogSessions(ctx context.Context, sessions []domain.Session) (*domain.LogEntry, error) {
	entry := domain.LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Sessions:  sessions,
	}

	if err := s.log.Append(ctx, entry); err != nil {
		return nil, err
	}

	return &entry, nil
}
