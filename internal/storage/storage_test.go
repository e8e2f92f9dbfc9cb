package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestBatchMissing(t *testing.T) {
	store := newTestStorage(t)

	batch, found, err := store.Batch("u1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, batch)
}

func TestUpsertBatchReplacesWholesale(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.UpsertBatch("u1", []string{"one", "two", "three"}))

	batch, found, err := store.Batch("u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"one", "two", "three"}, batch.Messages)

	// A second capture fully replaces the first, it never merges.
	require.NoError(t, store.UpsertBatch("u1", []string{"four"}))

	batch, found, err = store.Batch("u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"four"}, batch.Messages)
}

func TestBatchKeyedByUserOnly(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.UpsertBatch("u1", []string{"a"}))
	require.NoError(t, store.UpsertBatch("u2", []string{"b"}))

	batch, found, err := store.Batch("u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"a"}, batch.Messages)
}

func TestBatchSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.json")

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.UpsertBatch("u1", []string{"persisted"}))
	require.NoError(t, store.Close())

	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	batch, found, err := reopened.Batch("u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"persisted"}, batch.Messages)
}

func TestCommandHistory(t *testing.T) {
	store := newTestStorage(t)

	rec := CommandHistoryRecord{
		ChannelID: "c1",
		UserID:    "u1",
		Username:  "alice",
		Command:   "capture-messages",
		Datetime:  time.Now(),
	}
	require.NoError(t, store.AppendCommandToHistory("g1", rec))

	history, err := store.FetchCommandHistory("g1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "capture-messages", history[0].Command)
	assert.Equal(t, "alice", history[0].Username)
}
