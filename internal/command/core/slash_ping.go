package core

import (
	"mirror-bot/internal/command"

	"github.com/bwmarrin/discordgo"
)

type PingCommand struct{}

func (c *PingCommand) Name() string            { return "ping" }
func (c *PingCommand) Description() string     { return "Check if the bot is alive" }
func (c *PingCommand) Group() string           { return "core" }
func (c *PingCommand) Category() string        { return "🛠️ Maintenance" }
func (c *PingCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *PingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PingCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashContext)
	if !ok {
		return nil
	}

	return slash.Session.InteractionRespond(slash.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Pong! 🏓",
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func init() {
	command.RegisterCommand(
		&PingCommand{},
		command.WithCommandLogger(),
	)
}
