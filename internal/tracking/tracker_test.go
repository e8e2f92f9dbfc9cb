package tracking

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"mirror-bot/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeAnalyzer) RunLiveAnalysis(userID, guildID, displayName string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
}

func (f *fakeAnalyzer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeNotifier) Send(channelID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, content)
	return nil
}

func (f *fakeNotifier) countContaining(substr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.sent {
		if strings.Contains(s, substr) {
			n++
		}
	}
	return n
}

func newTestTracker(t *testing.T) (*Tracker, *storage.MessageStore, *fakeAnalyzer, *fakeNotifier) {
	t.Helper()

	store, err := storage.OpenMessageStore(filepath.Join(t.TempDir(), "messages.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	analyzer := &fakeAnalyzer{}
	notify := &fakeNotifier{}

	return New(store, analyzer, notify), store, analyzer, notify
}

func qualifyingEvent(i int) Event {
	return Event{
		UserID:      "u1",
		GuildID:     "g1",
		ChannelID:   "c1",
		DisplayName: "Alice",
		Content:     fmt.Sprintf("message %d", i),
		Timestamp:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Second),
	}
}

func TestMilestonesFireExactlyOnce(t *testing.T) {
	tracker, _, analyzer, notify := newTestTracker(t)

	for i := 1; i <= 260; i++ {
		tracker.Process(qualifyingEvent(i))
	}

	assert.Equal(t, 1, notify.countContaining("50 messages away"), "warn at 200 exactly once")
	assert.Equal(t, 1, notify.countContaining("25 messages away"), "warn at 225 exactly once")
	assert.Equal(t, 1, notify.countContaining("reached 250 messages"), "threshold notice exactly once")
	assert.Equal(t, 1, analyzer.count(), "analysis exactly once before 500")
}

func TestSecondMilestoneFiresAt500(t *testing.T) {
	tracker, _, analyzer, notify := newTestTracker(t)

	for i := 1; i <= 500; i++ {
		tracker.Process(qualifyingEvent(i))
	}

	assert.Equal(t, 2, analyzer.count())
	assert.Equal(t, 1, notify.countContaining("reached 250 messages"))
	assert.Equal(t, 1, notify.countContaining("reached 500 messages"))
}

func TestNonQualifyingEventsAreDropped(t *testing.T) {
	tracker, store, analyzer, notify := newTestTracker(t)

	events := []Event{
		{UserID: "u1", GuildID: "g1", ChannelID: "c1", Content: "from a bot", FromBot: true},
		{UserID: "u1", GuildID: "", ChannelID: "c1", Content: "a DM", DM: true},
		{UserID: "u1", GuildID: "g1", ChannelID: "c1", Content: "", HasMedia: true},
		{UserID: "u1", GuildID: "g1", ChannelID: "c1", Content: "has attachment", HasMedia: true},
		{UserID: "u1", GuildID: "g1", ChannelID: "c1", Content: ""},
		{UserID: "u1", GuildID: "g1", ChannelID: "c1", Content: "   \n\t "},
	}
	for _, ev := range events {
		tracker.Process(ev)
	}

	count, err := store.Count("u1", "g1")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, analyzer.count())
	assert.Empty(t, notify.sent)
}

func TestCountsAreKeyedPerUserAndGuild(t *testing.T) {
	tracker, store, _, _ := newTestTracker(t)

	for i := 1; i <= 3; i++ {
		ev := qualifyingEvent(i)
		tracker.Process(ev)

		other := qualifyingEvent(i)
		other.UserID = "u2"
		tracker.Process(other)

		otherGuild := qualifyingEvent(i)
		otherGuild.GuildID = "g2"
		tracker.Process(otherGuild)
	}

	for _, key := range []struct{ user, guild string }{
		{"u1", "g1"}, {"u2", "g1"}, {"u1", "g2"},
	} {
		count, err := store.Count(key.user, key.guild)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	}
}

func TestNilStoreDropsSilently(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	notify := &fakeNotifier{}
	tracker := New(nil, analyzer, notify)

	assert.NotPanics(t, func() {
		tracker.Process(qualifyingEvent(1))
	})
	assert.Zero(t, analyzer.count())
	assert.Empty(t, notify.sent)
}

// Two racing messages that straddle the milestone still fire analysis
// exactly once: the store's insert-and-count transaction hands each racer a
// distinct total, so at most one of them can observe cycle == 0.
func TestConcurrentMilestoneFiresOnce(t *testing.T) {
	tracker, _, analyzer, _ := newTestTracker(t)

	for i := 1; i <= 248; i++ {
		tracker.Process(qualifyingEvent(i))
	}

	var wg sync.WaitGroup
	for i := 249; i <= 250; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tracker.Process(qualifyingEvent(i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, analyzer.count())
}
