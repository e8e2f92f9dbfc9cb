package simulation

import (
	"path/filepath"
	"testing"
	"time"

	"mirror-bot/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStores(t *testing.T) (*storage.MessageStore, *storage.Storage) {
	t.Helper()

	dir := t.TempDir()

	messages, err := storage.OpenMessageStore(filepath.Join(dir, "messages.db"))
	require.NoError(t, err)
	t.Cleanup(func() { messages.Close() })

	store, err := storage.New(filepath.Join(dir, "datastore.json"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return messages, store
}

func seed(t *testing.T, messages *storage.MessageStore, userID, guildID string, contents ...string) {
	t.Helper()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, content := range contents {
		_, err := messages.Insert(storage.Message{
			UserID:    userID,
			GuildID:   guildID,
			Content:   content,
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}
}

func TestCaptureBatchNewestFirst(t *testing.T) {
	messages, store := newTestStores(t)
	seed(t, messages, "u1", "g1", "oldest", "middle", "newest")

	batch, err := captureBatch(messages, store, "u1", "g1", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"newest", "middle"}, batch)
}

func TestCaptureBatchFewerThanRequested(t *testing.T) {
	messages, store := newTestStores(t)
	seed(t, messages, "u1", "g1", "one", "two", "three")

	batch, err := captureBatch(messages, store, "u1", "g1", 5)
	require.NoError(t, err)
	assert.Len(t, batch, 3)

	saved, found, err := store.Batch("u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, saved.Messages, 3)
}

func TestCaptureBatchReplacesPriorCapture(t *testing.T) {
	messages, store := newTestStores(t)
	seed(t, messages, "u1", "g1", "first era")

	_, err := captureBatch(messages, store, "u1", "g1", defaultCaptureAmount)
	require.NoError(t, err)

	seed(t, messages, "u1", "g1", "second era a", "second era b")

	batch, err := captureBatch(messages, store, "u1", "g1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"second era b", "second era a"}, batch)

	saved, found, err := store.Batch("u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"second era b", "second era a"}, saved.Messages)
}

func TestCaptureBatchEmptyHistory(t *testing.T) {
	messages, store := newTestStores(t)

	batch, err := captureBatch(messages, store, "u1", "g1", defaultCaptureAmount)
	require.NoError(t, err)
	assert.Empty(t, batch)

	saved, found, err := store.Batch("u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Empty(t, saved.Messages)
}
