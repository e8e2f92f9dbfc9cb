package core

import (
	"fmt"
	"strings"

	"mirror-bot/internal/command"
	"mirror-bot/internal/discord"

	"github.com/bwmarrin/discordgo"
)

const (
	discordMaxMessageLength = 2000
	codeLeftBlockWrapper    = "```md"
	codeRightBlockWrapper   = "```"
)

var maxContentLength = discordMaxMessageLength - len(codeLeftBlockWrapper) - len(codeRightBlockWrapper)

type CommandsLogCommand struct{}

func (c *CommandsLogCommand) Name() string        { return "commands-log" }
func (c *CommandsLogCommand) Description() string { return "Review recently used commands" }
func (c *CommandsLogCommand) Group() string       { return "core" }
func (c *CommandsLogCommand) Category() string    { return "🛠️ Maintenance" }
func (c *CommandsLogCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageServer}
}

func (c *CommandsLogCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *CommandsLogCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashContext)
	if !ok {
		return nil
	}

	session := slash.Session
	event := slash.Event

	if slash.Deps == nil || slash.Deps.Store == nil {
		return discord.RespondEphemeral(session, event, "⚠️ Database not available.")
	}

	records, err := slash.Deps.Store.FetchCommandHistory(event.GuildID)
	if err != nil {
		return discord.RespondEphemeral(session, event, fmt.Sprintf("Failed to fetch command logs: %v", err))
	}
	if len(records) == 0 {
		return discord.RespondEphemeral(session, event, "No command history found.")
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%-19s\t%-15s\t%s\n", "# Datetime", "# Username", "# Command"))

	// Newest first, capped at what fits in a single Discord message.
	for idx := len(records) - 1; idx >= 0; idx-- {
		r := records[idx]

		line := fmt.Sprintf(
			"%-19s\t%-15s\t/%s\n",
			r.Datetime.Format("2006-01-02 15:04:05"),
			r.Username,
			r.Command,
		)
		if builder.Len()+len(line) > maxContentLength {
			break
		}
		builder.WriteString(line)
	}

	out := codeLeftBlockWrapper + "\n" + builder.String() + codeRightBlockWrapper
	return discord.RespondEphemeral(session, event, out)
}

func init() {
	command.RegisterCommand(
		&CommandsLogCommand{},
		command.WithGuildOnly(),
		command.WithUserPermissionCheck(),
		command.WithCommandLogger(),
	)
}
