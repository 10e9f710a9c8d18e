package notification

import (
	"context"
	"errors"
)

// ErrNoBackup reports that recovery found no backup file to restore.
var ErrNoBackup = errors.New("no notification backup available")

// Repository is the durable ledger. Load never fails upward: a missing
// or corrupt primary file triggers recovery from the newest backup, and
// an empty ledger is returned when no backup exists.
type Repository interface {
	Load(ctx context.Context) ([]Notification, error)
	Save(ctx context.Context, notifications []Notification) error

	// Backup snapshots the given ledger state into the timestamped
	// backup set, pruning to the retention limit.
	Backup(ctx context.Context, notifications []Notification) error

	// RecoverFromBackup loads the newest backup, persists it as the new
	// primary and returns it. ErrNoBackup when none exists.
	RecoverFromBackup(ctx context.Context) ([]Notification, error)
}
