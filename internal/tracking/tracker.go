// Package tracking ingests guild messages and fires the Mirror analysis
// every time a user's message count crosses a multiple of the milestone.
package tracking

import (
	"fmt"
	"log"
	"strings"
	"time"

	"mirror-bot/internal/storage"
)

const (
	// milestone is the qualifying-message count that triggers an analysis.
	milestone = 250

	firstWarnAt  = 200
	secondWarnAt = 225
)

// Event is one inbound message, reduced to what ingestion needs.
type Event struct {
	UserID      string
	GuildID     string
	ChannelID   string
	DisplayName string
	Content     string
	Timestamp   time.Time
	FromBot     bool
	DM          bool
	HasMedia    bool
}

// Analyzer runs the Mirror pipeline once a milestone is crossed. The engine
// is built once at process start and injected here.
type Analyzer interface {
	RunLiveAnalysis(userID, guildID, displayName string)
}

// Notifier posts progress notices to the originating channel.
type Notifier interface {
	Send(channelID, content string) error
}

type Tracker struct {
	store  *storage.MessageStore
	engine Analyzer
	notify Notifier
}

func New(store *storage.MessageStore, engine Analyzer, notify Notifier) *Tracker {
	return &Tracker{store: store, engine: engine, notify: notify}
}

// Process ingests one message event. Ingestion is best effort: storage or
// delivery hiccups drop the event, they never crash the bot.
func (t *Tracker) Process(ev Event) {
	if ev.FromBot || ev.DM || ev.HasMedia {
		return
	}
	if strings.TrimSpace(ev.Content) == "" {
		return
	}
	if t.store == nil {
		return
	}

	total, err := t.store.Insert(storage.Message{
		UserID:    ev.UserID,
		GuildID:   ev.GuildID,
		Content:   ev.Content,
		Timestamp: ev.Timestamp,
	})
	if err != nil {
		log.Printf("[ERR] Message insert failed for %s/%s: %v", ev.UserID, ev.GuildID, err)
		return
	}

	cycle := total % milestone

	if cycle == firstWarnAt {
		t.send(ev.ChannelID, fmt.Sprintf("🟦 **%s, you're 50 messages away from your Mirror summary! (%d/%d)**", ev.DisplayName, total, milestone))
	}
	if cycle == secondWarnAt {
		t.send(ev.ChannelID, fmt.Sprintf("🟧 **%s, you're 25 messages away from your Mirror summary! (%d/%d)**", ev.DisplayName, total, milestone))
	}
	if cycle == 0 && total != 0 {
		t.send(ev.ChannelID, fmt.Sprintf("📘 **%s reached %d messages. Generating Mirror analysis…**", ev.DisplayName, total))
		if t.engine != nil {
			t.engine.RunLiveAnalysis(ev.UserID, ev.GuildID, ev.DisplayName)
		}
	}
}

func (t *Tracker) send(channelID, content string) {
	if t.notify == nil {
		return
	}
	if err := t.notify.Send(channelID, content); err != nil {
		log.Printf("[WARN] Failed to deliver milestone notice: %v", err)
	}
}
