package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"ontwatch/internal/domain/notification"
	"ontwatch/internal/logger"
)

const (
	backupPrefix    = "notifications-"
	backupSuffix    = ".json"
	backupRetention = 10

	// Fixed-width UTC stamp embedded in backup file names. Retention
	// and recovery order lexicographically on this key, not on
	// filesystem modification time.
	backupStampLayout = "20060102-150405.000000000"
)

// NotificationRepository is the durable ledger plus its timestamped
// backup set. Loading a missing or corrupt primary recovers from the
// newest backup instead of failing.
type NotificationRepository struct {
	store     *Store
	backupDir string
	mu        sync.Mutex
}

func NewNotificationRepository(store *Store, backupDir string) *NotificationRepository {
	return &NotificationRepository{store: store, backupDir: backupDir}
}

func (r *NotificationRepository) Load(ctx context.Context) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked(ctx)
}

func (r *NotificationRepository) loadLocked(ctx context.Context) ([]notification.Notification, error) {
	entries := []notification.Notification{}
	err := r.store.Load(&entries)

	switch {
	case err == nil:
		if vErr := validateLedger(entries); vErr != nil {
			logger.Warn("Notification ledger failed validation, recovering from backup", zap.Error(vErr))
			return r.recoverLocked(ctx)
		}
		return entries, nil

	case errors.Is(err, ErrNotFound):
		logger.Warn("Notification ledger missing, recovering from backup")
		return r.recoverLocked(ctx)

	default:
		var corrupt *CorruptError
		if errors.As(err, &corrupt) {
			logger.Warn("Notification ledger corrupt, recovering from backup", zap.Error(corrupt.Err))
			return r.recoverLocked(ctx)
		}
		return nil, err
	}
}

func (r *NotificationRepository) Save(_ context.Context, notifications []notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Save(notifications)
}

func (r *NotificationRepository) Backup(_ context.Context, notifications []notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backupLocked(notifications)
}

func (r *NotificationRepository) backupLocked(notifications []notification.Notification) error {
	if err := os.MkdirAll(r.backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	data, err := json.MarshalIndent(notifications, "", "  ")
	if err != nil {
		return fmt.Errorf("encode notification backup: %w", err)
	}

	stamp := time.Now().UTC().Format(backupStampLayout)
	path := filepath.Join(r.backupDir, backupPrefix+stamp+backupSuffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write notification backup: %w", err)
	}

	r.pruneBackups()
	return nil
}

func (r *NotificationRepository) RecoverFromBackup(ctx context.Context) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recoverFromBackupLocked(ctx)
}

// recoverLocked is load-time recovery: backup failure degrades to an
// empty ledger, never an error to the caller.
func (r *NotificationRepository) recoverLocked(ctx context.Context) ([]notification.Notification, error) {
	recovered, err := r.recoverFromBackupLocked(ctx)
	if err != nil {
		if !errors.Is(err, notification.ErrNoBackup) {
			logger.Warn("Notification recovery failed, starting with empty ledger", zap.Error(err))
		}
		return []notification.Notification{}, nil
	}
	return recovered, nil
}

func (r *NotificationRepository) recoverFromBackupLocked(_ context.Context) ([]notification.Notification, error) {
	names := r.backupNames()
	if len(names) == 0 {
		return nil, notification.ErrNoBackup
	}

	// Newest first by embedded stamp.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names {
		path := filepath.Join(r.backupDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Failed to read notification backup", zap.String("path", path), zap.Error(err))
			continue
		}

		entries := []notification.Notification{}
		if err := json.Unmarshal(data, &entries); err != nil {
			logger.Warn("Notification backup undecodable, trying older one", zap.String("path", path), zap.Error(err))
			continue
		}

		// Persist the recovered ledger as the new primary.
		if err := r.store.Save(entries); err != nil {
			return nil, err
		}

		logger.Info("Recovered notifications from backup",
			zap.String("path", path),
			zap.Int("count", len(entries)),
		)
		return entries, nil
	}

	return nil, notification.ErrNoBackup
}

func (r *NotificationRepository) pruneBackups() {
	names := r.backupNames()
	if len(names) <= backupRetention {
		return
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	for _, name := range names[backupRetention:] {
		if err := os.Remove(filepath.Join(r.backupDir, name)); err != nil {
			logger.Warn("Failed to remove old notification backup", zap.String("name", name), zap.Error(err))
		}
	}
}

func (r *NotificationRepository) backupNames() []string {
	entries, err := os.ReadDir(r.backupDir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.Type().IsRegular() && strings.HasPrefix(name, backupPrefix) && strings.HasSuffix(name, backupSuffix) {
			names = append(names, name)
		}
	}
	return names
}

func validateLedger(entries []notification.Notification) error {
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}
