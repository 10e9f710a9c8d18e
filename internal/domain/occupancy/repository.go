package occupancy

import "context"

// LogRepository stores the full snapshot log (capped at MaxLogEntries).
type LogRepository interface {
	Load(ctx context.Context) ([]LogEntry, error)
	Append(ctx context.Context, entry LogEntry) error
}

// HistoryRepository stores the coarse trend series (capped at
// MaxHistoryPoints).
type HistoryRepository interface {
	Load(ctx context.Context) ([]HistoryPoint, error)
	Append(ctx context.Context, point HistoryPoint) error
}
