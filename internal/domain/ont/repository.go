package ont

import "context"

// Repository is whole-collection storage for the terminal fleet. The
// backing resource is a single JSON array; every mutation is a
// read-modify-write of the full collection.
type Repository interface {
	List(ctx context.Context) ([]ONT, error)
	GetByID(ctx context.Context, id int) (*ONT, error)
	Create(ctx context.Context, o *ONT) error
	Update(ctx context.Context, o *ONT) error
	Delete(ctx context.Context, id int) error

	// MergeDynamic re-reads the collection and folds in only the
	// poller-owned fields for the given ids, leaving concurrent
	// identity edits untouched.
	MergeDynamic(ctx context.Context, updates map[int]Dynamic) error
}
