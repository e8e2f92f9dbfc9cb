package simulation

import (
	"fmt"

	"mirror-bot/internal/command"
	"mirror-bot/internal/discord"

	"github.com/bwmarrin/discordgo"
)

type RunSimulationCommand struct{}

func (c *RunSimulationCommand) Name() string        { return "run-simulation-analysis" }
func (c *RunSimulationCommand) Description() string {
	return "Run Mirror analysis on any user's saved simulation batch"
}
func (c *RunSimulationCommand) Group() string    { return "simulation" }
func (c *RunSimulationCommand) Category() string { return "🧪 Simulation" }
func (c *RunSimulationCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageServer}
}

func (c *RunSimulationCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "target_user",
				Description: "Whose simulation batch to analyze",
				Required:    true,
			},
		},
	}
}

func (c *RunSimulationCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashContext)
	if !ok {
		return nil
	}

	session := slash.Session
	event := slash.Event

	var targetUser *discordgo.User
	for _, opt := range event.ApplicationCommandData().Options {
		if opt.Name == "target_user" {
			targetUser = opt.UserValue(session)
		}
	}
	if targetUser == nil {
		return discord.RespondEphemeral(session, event, "No target user given.")
	}

	if slash.Deps == nil || slash.Deps.Engine == nil {
		return discord.RespondEphemeral(session, event, "⚠️ Analysis engine not available.")
	}

	// Acknowledge first: the model call below can take a while.
	err := discord.RespondEphemeral(session, event, fmt.Sprintf(
		"Running simulation analysis for **%s**… Check **#ai-insights**.",
		targetUser.Username,
	))

	// Batches are keyed by user only, the invoking guild is ignored.
	slash.Deps.Engine.RunSimulationAnalysis(targetUser.ID)

	return err
}

func init() {
	command.RegisterCommand(
		&RunSimulationCommand{},
		command.WithGuildOnly(),
		command.WithUserPermissionCheck(),
		command.WithCommandLogger(),
	)
}
