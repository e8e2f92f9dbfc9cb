package core

import (
	"fmt"
	"strings"
	"time"

	"mirror-bot/internal/command"
	"mirror-bot/internal/discord"
	"mirror-bot/internal/version"

	"github.com/bwmarrin/discordgo"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "Discover what this bot is and how it works" }
func (c *AboutCommand) Group() string       { return "core" }
func (c *AboutCommand) Category() string    { return "🕯️ Information" }
func (c *AboutCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *AboutCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashContext)
	if !ok {
		return nil
	}

	return discord.RespondEphemeral(slash.Session, slash.Event, buildAboutMessage())
}

func buildAboutMessage() string {
	release := version.AppVersion
	if version.BuildDate != "" {
		if t, err := time.Parse(time.RFC3339, version.BuildDate); err == nil {
			release = fmt.Sprintf("%s (%s)", version.AppVersion, t.Format("2006-01-02"))
		}
	}
	if version.GoVersion != "" {
		release += " Go " + strings.TrimPrefix(version.GoVersion, "go")
	}

	return fmt.Sprintf(
		"ℹ️ **About %s**\n\n%s.\n\nI watch how people write, and every 250 messages I hold up a mirror in **#ai-insights**.\n\nRelease: %s",
		version.AppName, version.AppDescription, release,
	)
}

func init() {
	command.RegisterCommand(
		&AboutCommand{},
		command.WithCommandLogger(),
	)
}
