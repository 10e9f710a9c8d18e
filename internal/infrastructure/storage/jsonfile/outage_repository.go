package jsonfile

import (
	"context"
	"sync"

	"ontwatch/internal/domain/outage"
)

// OutageRepository keeps all downtime intervals in one JSON array.
type OutageRepository struct {
	store *Store
	mu    sync.Mutex
}

func NewOutageRepository(store *Store) *OutageRepository {
	return &OutageRepository{store: store}
}

func (r *OutageRepository) Load(_ context.Context) ([]outage.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := []outage.Record{}
	if err := r.store.LoadOrEmpty(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *OutageRepository) Save(_ context.Context, records []outage.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Save(records)
}
