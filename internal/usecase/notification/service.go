package notification

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	domain "ontwatch/internal/domain/notification"
	"ontwatch/internal/logger"
	appErrors "ontwatch/pkg/errors"
	"ontwatch/pkg/utils"
)

// Service implements the notification ledger use cases.
type Service struct {
	repo domain.Repository
}

func NewService(repo domain.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the ledger sorted newest first.
func (s *Service) List(ctx context.Context) ([]domain.Notification, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})

	return entries, nil
}

// Append assigns the next id, snapshots a timestamped backup and writes
// the ledger. Backup failure is logged, never surfaced: disk growth is
// bounded by the retention limit, not by the append path.
func (s *Service) Append(ctx context.Context, req *AppendRequest) (*domain.Notification, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	entry := domain.Notification{
		ID:         domain.NextID(entries),
		Message:    req.Message,
		Type:       normalizeType(req.Type),
		Timestamp:  req.Timestamp,
		DeviceID:   req.DeviceID,
		DeviceName: req.DeviceName,
		Read:       false,
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(time.RFC3339)
	}

	entries = append(entries, entry)

	if err := s.repo.Backup(ctx, entries); err != nil {
		logger.Warn("Failed to backup notifications", zap.Error(err))
	}

	if err := s.repo.Save(ctx, entries); err != nil {
		return nil, err
	}

	return &entry, nil
}

// MarkRead flips the read flag; an unknown id is a no-op.
func (s *Service) MarkRead(ctx context.Context, id int) error {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	for i := range entries {
		if entries[i].ID == id {
			entries[i].Read = true
			break
		}
	}

	return s.repo.Save(ctx, entries)
}

// ClearAll empties the ledger. A non-empty ledger is backed up first so
// clearing is always recoverable.
func (s *Service) ClearAll(ctx context.Context) error {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	if len(entries) > 0 {
		if err := s.repo.Backup(ctx, entries); err != nil {
			logger.Warn("Failed to backup notifications before clear", zap.Error(err))
		}
	}

	return s.repo.Save(ctx, []domain.Notification{})
}

// RestoreLatestBackup backs up the current state, then replaces the
// ledger with the newest backup. Returns the restored count.
func (s *Service) RestoreLatestBackup(ctx context.Context) (int, error) {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return 0, err
	}

	if len(entries) > 0 {
		if err := s.repo.Backup(ctx, entries); err != nil {
			logger.Warn("Failed to backup notifications before restore", zap.Error(err))
		}
	}

	restored, err := s.repo.RecoverFromBackup(ctx)
	if err != nil {
		return 0, err
	}

	return len(restored), nil
}

func normalizeType(t string) domain.Type {
	switch domain.Type(t) {
	case domain.TypeInfo, domain.TypeSuccess, domain.TypeWarning, domain.TypeError:
		return domain.Type(t)
	default:
		return domain.TypeInfo
	}
}
