package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ChannelNotifier delivers text to channels and resolves the insights
// channel by name across every guild the bot can see. It satisfies the
// Notifier interfaces of both the analysis engine and the tracker.
type ChannelNotifier struct {
	bot  *Bot
	name string
}

// Notifier returns a notifier bound to this bot that resolves the named
// insights channel.
func (b *Bot) Notifier(insightsChannelName string) *ChannelNotifier {
	return &ChannelNotifier{bot: b, name: insightsChannelName}
}

func (n *ChannelNotifier) Send(channelID, content string) error {
	s := n.bot.session()
	if s == nil {
		return fmt.Errorf("discord session not ready")
	}
	return Message(s, channelID, content)
}

// InsightsChannel finds the first text channel matching the configured name
// in any guild. State is tried first; guilds with no cached channels fall
// back to a REST lookup.
func (n *ChannelNotifier) InsightsChannel() (string, bool) {
	s := n.bot.session()
	if s == nil {
		return "", false
	}

	for _, guild := range s.State.Guilds {
		channels := guild.Channels
		if len(channels) == 0 {
			channels, _ = s.GuildChannels(guild.ID)
		}
		for _, ch := range channels {
			if ch.Type == discordgo.ChannelTypeGuildText && ch.Name == n.name {
				return ch.ID, true
			}
		}
	}
	return "", false
}
