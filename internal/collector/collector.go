package collector

import (
	"context"

	"ontwatch/internal/domain/occupancy"
)

// Collector is the access-controller capability: given credentials,
// return the list of active-session records. Failures mean "no data
// this cycle", never a fatal condition.
type Collector interface {
	FetchActiveSessions(ctx context.Context) ([]occupancy.Session, error)
}

// Noop is the test/development double selected by configuration. It
// reports an empty session list.
type Noop struct{}

func (Noop) FetchActiveSessions(context.Context) ([]occupancy.Session, error) {
	return []occupancy.Session{}, nil
}
