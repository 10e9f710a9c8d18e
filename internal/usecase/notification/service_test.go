package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "ontwatch/internal/domain/notification"
)

// fakeRepo keeps the ledger and backup snapshots in memory.
type fakeRepo struct {
	ledger  []domain.Notification
	backups [][]domain.Notification
}

func (f *fakeRepo) Load(context.Context) ([]domain.Notification, error) {
	out := make([]domain.Notification, len(f.ledger))
	copy(out, f.ledger)
	return out, nil
}

func (f *fakeRepo) Save(_ context.Context, entries []domain.Notification) error {
	f.ledger = make([]domain.Notification, len(entries))
	copy(f.ledger, entries)
	return nil
}

func (f *fakeRepo) Backup(_ context.Context, entries []domain.Notification) error {
	snapshot := make([]domain.Notification, len(entries))
	copy(snapshot, entries)
	f.backups = append(f.backups, snapshot)
	return nil
}

func (f *fakeRepo) RecoverFromBackup(context.Context) ([]domain.Notification, error) {
	if len(f.backups) == 0 {
		return nil, domain.ErrNoBackup
	}
	newest := f.backups[len(f.backups)-1]
	f.ledger = make([]domain.Notification, len(newest))
	copy(f.ledger, newest)
	return newest, nil
}

func TestAppendAssignsNextID(t *testing.T) {
	repo := &fakeRepo{ledger: []domain.Notification{
		{ID: 3, Message: "a", Timestamp: "2026-08-29T09:00:00Z"},
		{ID: 7, Message: "b", Timestamp: "2026-08-29T09:01:00Z"},
	}}
	svc := NewService(repo)

	entry, err := svc.Append(context.Background(), &AppendRequest{Message: "c"})
	require.NoError(t, err)

	// Gaps in the ledger never cause id reuse.
	assert.Equal(t, 8, entry.ID)
	assert.Len(t, repo.ledger, 3)
}

func TestAppendDefaultsTimestampAndType(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	before := time.Now().Add(-time.Second)
	entry, err := svc.Append(context.Background(), &AppendRequest{Message: "hello"})
	require.NoError(t, err)

	// An omitted type defaults to info.
	assert.Equal(t, domain.TypeInfo, entry.Type)
	ts, parseErr := time.Parse(time.RFC3339, entry.Timestamp)
	require.NoError(t, parseErr)
	assert.True(t, ts.After(before))
	assert.False(t, entry.Read)
}

func TestAppendRejectsInvalidInput(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.Append(context.Background(), &AppendRequest{Message: ""})
	assert.Error(t, err)

	_, err = svc.Append(context.Background(), &AppendRequest{Message: "x", Type: "bogus"})
	assert.Error(t, err)
}

func TestAppendSnapshotsBackup(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	_, err := svc.Append(context.Background(), &AppendRequest{Message: "first"})
	require.NoError(t, err)

	require.Len(t, repo.backups, 1)
	assert.Len(t, repo.backups[0], 1)
}

func TestListNewestFirst(t *testing.T) {
	repo := &fakeRepo{ledger: []domain.Notification{
		{ID: 1, Message: "old", Timestamp: "2026-08-28T10:00:00Z"},
		{ID: 2, Message: "new", Timestamp: "2026-08-29T10:00:00Z"},
		{ID: 3, Message: "mid", Timestamp: "2026-08-28T18:00:00Z"},
	}}
	svc := NewService(repo)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "new", entries[0].Message)
	assert.Equal(t, "mid", entries[1].Message)
	assert.Equal(t, "old", entries[2].Message)
}

func TestMarkReadUnknownIDIsNoOp(t *testing.T) {
	repo := &fakeRepo{ledger: []domain.Notification{
		{ID: 1, Message: "a", Timestamp: "2026-08-29T10:00:00Z"},
	}}
	svc := NewService(repo)

	require.NoError(t, svc.MarkRead(context.Background(), 99))
	assert.False(t, repo.ledger[0].Read)
}

func TestMarkReadFlipsFlag(t *testing.T) {
	repo := &fakeRepo{ledger: []domain.Notification{
		{ID: 1, Message: "a", Timestamp: "2026-08-29T10:00:00Z"},
		{ID: 2, Message: "b", Timestamp: "2026-08-29T10:01:00Z"},
	}}
	svc := NewService(repo)

	require.NoError(t, svc.MarkRead(context.Background(), 2))
	assert.False(t, repo.ledger[0].Read)
	assert.True(t, repo.ledger[1].Read)
}

func TestClearAllBacksUpNonEmptyLedger(t *testing.T) {
	repo := &fakeRepo{ledger: []domain.Notification{
		{ID: 1, Message: "a", Timestamp: "2026-08-29T10:00:00Z"},
	}}
	svc := NewService(repo)

	require.NoError(t, svc.ClearAll(context.Background()))
	assert.Empty(t, repo.ledger)
	require.Len(t, repo.backups, 1)
	assert.Len(t, repo.backups[0], 1)
}

func TestClearAllEmptyLedgerSkipsBackup(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	require.NoError(t, svc.ClearAll(context.Background()))
	assert.Empty(t, repo.backups)
}

func TestRestoreLatestBackupFromEmptyLedger(t *testing.T) {
	repo := &fakeRepo{
		backups: [][]domain.Notification{
			{
				{ID: 1, Message: "a", Timestamp: "2026-08-29T10:00:00Z"},
				{ID: 2, Message: "b", Timestamp: "2026-08-29T10:01:00Z"},
			},
		},
	}
	svc := NewService(repo)

	count, err := svc.RestoreLatestBackup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, repo.ledger, 2)
}

func TestRestoreLatestBackupSnapshotsCurrentFirst(t *testing.T) {
	repo := &fakeRepo{
		ledger: []domain.Notification{
			{ID: 5, Message: "current", Timestamp: "2026-08-29T11:00:00Z"},
		},
		backups: [][]domain.Notification{
			{
				{ID: 1, Message: "a", Timestamp: "2026-08-29T10:00:00Z"},
			},
		},
	}
	svc := NewService(repo)

	count, err := svc.RestoreLatestBackup(context.Background())
	require.NoError(t, err)

	// The pre-restore snapshot becomes the newest backup, so a restore
	// over a live ledger round-trips the current state.
	assert.Equal(t, 1, count)
	require.Len(t, repo.backups, 2)
	assert.Equal(t, "current", repo.backups[1][0].Message)
	assert.Equal(t, "current", repo.ledger[0].Message)
}

func TestRestoreLatestBackupNoBackups(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.RestoreLatestBackup(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoBackup)
}
