package jsonfile

import (
	"context"
	"sync"

	"ontwatch/internal/domain/occupancy"
)

// OccupancyLogRepository is the append-only snapshot log, trimmed to
// the newest MaxLogEntries on every append.
type OccupancyLogRepository struct {
	store *Store
	mu    sync.Mutex
}

func NewOccupancyLogRepository(store *Store) *OccupancyLogRepository {
	return &OccupancyLogRepository{store: store}
}

func (r *OccupancyLogRepository) Load(_ context.Context) ([]occupancy.LogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := []occupancy.LogEntry{}
	if err := r.store.LoadOrEmpty(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *OccupancyLogRepository) Append(_ context.Context, entry occupancy.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := []occupancy.LogEntry{}
	if err := r.store.LoadOrEmpty(&entries); err != nil {
		return err
	}

	entries = append(entries, entry)
	if len(entries) > occupancy.MaxLogEntries {
		entries = entries[len(entries)-occupancy.MaxLogEntries:]
	}

	return r.store.Save(entries)
}

// HistoryRepository is the coarse trend series, trimmed to the newest
// MaxHistoryPoints on every append.
type HistoryRepository struct {
	store *Store
	mu    sync.Mutex
}

func NewHistoryRepository(store *Store) *HistoryRepository {
	return &HistoryRepository{store: store}
}

func (r *HistoryRepository) Load(_ context.Context) ([]occupancy.HistoryPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := []occupancy.HistoryPoint{}
	if err := r.store.LoadOrEmpty(&points); err != nil {
		return nil, err
	}
	return points, nil
}

func (r *HistoryRepository) Append(_ context.Context, point occupancy.HistoryPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := []occupancy.HistoryPoint{}
	if err := r.store.LoadOrEmpty(&points); err != nil {
		return err
	}

	points = append(points, point)
	if len(points) > occupancy.MaxHistoryPoints {
		points = points[len(points)-occupancy.MaxHistoryPoints:]
	}

	return r.store.Save(points)
}
