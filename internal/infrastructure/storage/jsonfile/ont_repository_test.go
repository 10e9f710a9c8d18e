package jsonfile

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ontwatch/internal/domain/ont"
)

func newONTRepo(t *testing.T) *ONTRepository {
	t.Helper()
	return NewONTRepository(NewStore(filepath.Join(t.TempDir(), "onts.json")))
}

func TestONTRepositoryCreateAssignsIDs(t *testing.T) {
	repo := newONTRepo(t)
	ctx := context.Background()

	first := &ont.ONT{Name: "ont-1", Address: "10.0.0.1", Status: ont.StatusOff}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, 1, first.ID)

	second := &ont.ONT{Name: "ont-2", Address: "10.0.0.2", Status: ont.StatusOff}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, 2, second.ID)

	// Deleting the newest frees nothing: max+1 still moves forward from
	// the remaining max.
	require.NoError(t, repo.Delete(ctx, 2))
	third := &ont.ONT{Name: "ont-3", Address: "10.0.0.3", Status: ont.StatusOff}
	require.NoError(t, repo.Create(ctx, third))
	assert.Equal(t, 2, third.ID)
}

func TestONTRepositoryGetByID(t *testing.T) {
	repo := newONTRepo(t)
	ctx := context.Background()

	o := &ont.ONT{Name: "ont-1", Address: "10.0.0.1", Status: ont.StatusOff}
	require.NoError(t, repo.Create(ctx, o))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "ont-1", got.Name)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ont.ErrNotFound)
}

func TestONTRepositoryUpdateUnknownID(t *testing.T) {
	repo := newONTRepo(t)

	err := repo.Update(context.Background(), &ont.ONT{ID: 7, Name: "ghost"})
	assert.ErrorIs(t, err, ont.ErrNotFound)
}

func TestONTRepositoryDeleteUnknownID(t *testing.T) {
	repo := newONTRepo(t)

	err := repo.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, ont.ErrNotFound)
}

func TestMergeDynamicPreservesIdentityEdits(t *testing.T) {
	repo := newONTRepo(t)
	ctx := context.Background()

	o := &ont.ONT{Name: "ont-1", Address: "10.0.0.1", Status: ont.StatusOn}
	require.NoError(t, repo.Create(ctx, o))

	// Identity edit lands between the poller's snapshot and its merge.
	o.Name = "ont-1-renamed"
	require.NoError(t, repo.Update(ctx, o))

	seen := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.MergeDynamic(ctx, map[int]ont.Dynamic{
		o.ID: {Status: ont.StatusOffWaiting, RetryCount: 1, LastSeen: &seen},
	}))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "ont-1-renamed", got.Name)
	assert.Equal(t, ont.StatusOffWaiting, got.Status)
	assert.Equal(t, 1, got.RetryCount)
	require.NotNil(t, got.LastSeen)
	assert.True(t, got.LastSeen.Equal(seen))
}

func TestMergeDynamicNilLastSeenKeepsPrevious(t *testing.T) {
	repo := newONTRepo(t)
	ctx := context.Background()

	seen := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	o := &ont.ONT{Name: "ont-1", Address: "10.0.0.1", Status: ont.StatusOn, LastSeen: &seen}
	require.NoError(t, repo.Create(ctx, o))

	require.NoError(t, repo.MergeDynamic(ctx, map[int]ont.Dynamic{
		o.ID: {Status: ont.StatusOffWaiting, RetryCount: 1, LastSeen: nil},
	}))

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastSeen)
	assert.True(t, got.LastSeen.Equal(seen))
}

func TestMergeDynamicIgnoresDeletedDevices(t *testing.T) {
	repo := newONTRepo(t)
	ctx := context.Background()

	o := &ont.ONT{Name: "ont-1", Address: "10.0.0.1", Status: ont.StatusOn}
	require.NoError(t, repo.Create(ctx, o))
	require.NoError(t, repo.Delete(ctx, o.ID))

	// The merge has an update for a device that vanished mid-cycle.
	require.NoError(t, repo.MergeDynamic(ctx, map[int]ont.Dynamic{
		o.ID: {Status: ont.StatusOff, RetryCount: 6},
	}))

	onts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, onts)
}
