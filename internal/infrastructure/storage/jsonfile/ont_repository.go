package jsonfile

import (
	"context"
	"sync"

	"ontwatch/internal/domain/ont"
)

// ONTRepository keeps the terminal fleet in one JSON array. A single
// mutex serializes read-modify-write cycles between the poller and the
// boundary handlers inside this process; cross-process writers are only
// protected by the atomic rename (last write wins).
type ONTRepository struct {
	store *Store
	mu    sync.Mutex
}

func NewONTRepository(store *Store) *ONTRepository {
	return &ONTRepository{store: store}
}

func (r *ONTRepository) List(_ context.Context) ([]ont.ONT, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *ONTRepository) GetByID(_ context.Context, id int) (*ont.ONT, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	onts, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range onts {
		if onts[i].ID == id {
			o := onts[i]
			return &o, nil
		}
	}

	return nil, ont.ErrNotFound
}

func (r *ONTRepository) Create(_ context.Context, o *ont.ONT) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	onts, err := r.load()
	if err != nil {
		return err
	}

	maxID := 0
	for i := range onts {
		if onts[i].ID > maxID {
			maxID = onts[i].ID
		}
	}
	o.ID = maxID + 1

	onts = append(onts, *o)
	return r.store.Save(onts)
}

func (r *ONTRepository) Update(_ context.Context, o *ont.ONT) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	onts, err := r.load()
	if err != nil {
		return err
	}

	for i := range onts {
		if onts[i].ID == o.ID {
			onts[i] = *o
			return r.store.Save(onts)
		}
	}

	return ont.ErrNotFound
}

func (r *ONTRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	onts, err := r.load()
	if err != nil {
		return err
	}

	kept := onts[:0]
	found := false
	for i := range onts {
		if onts[i].ID == id {
			found = true
			continue
		}
		kept = append(kept, onts[i])
	}
	if !found {
		return ont.ErrNotFound
	}

	return r.store.Save(kept)
}

func (r *ONTRepository) MergeDynamic(_ context.Context, updates map[int]ont.Dynamic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-read just before writing so concurrent identity edits made
	// while the poller was probing are preserved.
	onts, err := r.load()
	if err != nil {
		return err
	}

	for i := range onts {
		upd, ok := updates[onts[i].ID]
		if !ok {
			continue
		}
		onts[i].Status = upd.Status
		onts[i].RetryCount = upd.RetryCount
		if upd.LastSeen != nil {
			onts[i].LastSeen = upd.LastSeen
		}
	}

	return r.store.Save(onts)
}

func (r *ONTRepository) load() ([]ont.ONT, error) {
	onts := []ont.ONT{}
	if err := r.store.LoadOrEmpty(&onts); err != nil {
		return nil, err
	}
	return onts, nil
}
