package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ontwatch/internal/domain/notification"
)

func newNotificationRepo(t *testing.T) (*NotificationRepository, string, string) {
	t.Helper()
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	store := NewStore(filepath.Join(dir, "notifications.json"))
	return NewNotificationRepository(store, backupDir), dir, backupDir
}

func sampleLedger(n int) []notification.Notification {
	entries := make([]notification.Notification, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, notification.Notification{
			ID:        i,
			Message:   fmt.Sprintf("message %d", i),
			Type:      notification.TypeInfo,
			Timestamp: time.Date(2026, 8, 29, 10, i, 0, 0, time.UTC).Format(time.RFC3339),
		})
	}
	return entries
}

func TestNotificationRepositorySaveLoad(t *testing.T) {
	repo, _, _ := newNotificationRepo(t)
	ctx := context.Background()

	in := sampleLedger(3)
	require.NoError(t, repo.Save(ctx, in))

	out, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestNotificationRepositoryLoadMissingNoBackup(t *testing.T) {
	repo, _, _ := newNotificationRepo(t)

	out, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNotificationRepositoryRecoversFromCorruptPrimary(t *testing.T) {
	repo, dir, _ := newNotificationRepo(t)
	ctx := context.Background()

	ledger := sampleLedger(2)
	require.NoError(t, repo.Save(ctx, ledger))
	require.NoError(t, repo.Backup(ctx, ledger))

	primary := filepath.Join(dir, "notifications.json")
	require.NoError(t, os.WriteFile(primary, []byte("{broken"), 0o644))

	out, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, ledger, out)

	// Recovery persists the ledger as the new primary.
	var reread []notification.Notification
	require.NoError(t, NewStore(primary).Load(&reread))
	assert.Equal(t, ledger, reread)
}

func TestNotificationRepositoryRecoversFromInvalidShape(t *testing.T) {
	repo, dir, _ := newNotificationRepo(t)
	ctx := context.Background()

	ledger := sampleLedger(2)
	require.NoError(t, repo.Backup(ctx, ledger))

	// Decodable JSON but entries missing required fields.
	bad := `[{"id": 0, "message": "", "type": "info", "timestamp": ""}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notifications.json"), []byte(bad), 0o644))

	out, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, ledger, out)
}

func TestRecoverFromBackupPicksNewestByName(t *testing.T) {
	repo, _, backupDir := newNotificationRepo(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(backupDir, 0o755))

	older := `[{"id": 1, "message": "old", "type": "info", "timestamp": "2026-08-28T10:00:00Z"}]`
	newer := `[{"id": 2, "message": "new", "type": "info", "timestamp": "2026-08-29T10:00:00Z"}]`
	require.NoError(t, os.WriteFile(
		filepath.Join(backupDir, "notifications-20260828-100000.000000000.json"), []byte(older), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(backupDir, "notifications-20260829-100000.000000000.json"), []byte(newer), 0o644))

	out, err := repo.RecoverFromBackup(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0].Message)
}

func TestRecoverFromBackupSkipsUndecodable(t *testing.T) {
	repo, _, backupDir := newNotificationRepo(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(backupDir, 0o755))

	good := `[{"id": 1, "message": "survivor", "type": "info", "timestamp": "2026-08-28T10:00:00Z"}]`
	require.NoError(t, os.WriteFile(
		filepath.Join(backupDir, "notifications-20260828-100000.000000000.json"), []byte(good), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(backupDir, "notifications-20260829-100000.000000000.json"), []byte("not json"), 0o644))

	out, err := repo.RecoverFromBackup(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "survivor", out[0].Message)
}

func TestRecoverFromBackupNoBackups(t *testing.T) {
	repo, _, _ := newNotificationRepo(t)

	_, err := repo.RecoverFromBackup(context.Background())
	assert.ErrorIs(t, err, notification.ErrNoBackup)
}

func TestBackupRetentionKeepsTenNewest(t *testing.T) {
	repo, _, backupDir := newNotificationRepo(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(backupDir, 0o755))

	// Pre-seed 12 stamped backups, all older than anything Backup writes.
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("notifications-202501%02d-000000.000000000.json", i)
		require.NoError(t, os.WriteFile(filepath.Join(backupDir, name), []byte("[]"), 0o644))
	}

	require.NoError(t, repo.Backup(ctx, sampleLedger(1)))

	entries, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	assert.Len(t, entries, 10)

	// The oldest seeds must be the ones gone.
	for _, e := range entries {
		assert.NotContains(t, []string{
			"notifications-20250101-000000.000000000.json",
			"notifications-20250102-000000.000000000.json",
			"notifications-20250103-000000.000000000.json",
		}, e.Name())
	}
}

func TestBackupIgnoresForeignFiles(t *testing.T) {
	repo, _, backupDir := newNotificationRepo(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(backupDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(backupDir, "README.txt"), []byte("x"), 0o644))

	_, err := repo.RecoverFromBackup(ctx)
	assert.ErrorIs(t, err, notification.ErrNoBackup)
}
