package simulation

import (
	"fmt"
	"strings"

	"mirror-bot/internal/command"
	"mirror-bot/internal/discord"
	"mirror-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

const defaultCaptureAmount = 100

type CaptureMessagesCommand struct{}

func (c *CaptureMessagesCommand) Name() string        { return "capture-messages" }
func (c *CaptureMessagesCommand) Description() string {
	return "Save the last N messages from any user as a simulation batch"
}
func (c *CaptureMessagesCommand) Group() string    { return "simulation" }
func (c *CaptureMessagesCommand) Category() string { return "🧪 Simulation" }
func (c *CaptureMessagesCommand) UserPermissions() []int64 {
	return []int64{discordgo.PermissionManageServer}
}

func (c *CaptureMessagesCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minAmount := 1.0
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "target_user",
				Description: "Whose messages to capture",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "amount",
				Description: "How many recent messages to capture (default 100)",
				Required:    false,
				MinValue:    &minAmount,
				MaxValue:    1000,
			},
		},
	}
}

func (c *CaptureMessagesCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashContext)
	if !ok {
		return nil
	}

	session := slash.Session
	event := slash.Event

	if err := discord.RespondDeferredEphemeral(session, event); err != nil {
		return err
	}

	var (
		targetUser *discordgo.User
		amount     = defaultCaptureAmount
	)
	for _, opt := range event.ApplicationCommandData().Options {
		switch opt.Name {
		case "target_user":
			targetUser = opt.UserValue(session)
		case "amount":
			amount = int(opt.IntValue())
		}
	}

	if targetUser == nil {
		return discord.FollowupEphemeral(session, event, "No target user given.")
	}

	deps := slash.Deps
	if deps == nil || deps.Messages == nil || deps.Store == nil {
		return discord.FollowupEphemeral(session, event, "⚠️ Database not available.")
	}

	batch, err := captureBatch(deps.Messages, deps.Store, targetUser.ID, event.GuildID, amount)
	if err != nil {
		return discord.FollowupEphemeral(session, event, fmt.Sprintf("⚠️ Capture failed: %v", err))
	}

	// The operator always gets a private acknowledgment, whether or not the
	// preview below can be posted.
	ackErr := discord.FollowupEphemeral(session, event, fmt.Sprintf(
		"Simulation batch saved for **%s** with **%d** messages.",
		targetUser.Username, len(batch),
	))

	if deps.Notify != nil {
		if insights, ok := deps.Notify.InsightsChannel(); ok {
			preview := "No messages found."
			if len(batch) > 0 {
				preview = strings.Join(batch[:min(10, len(batch))], "\n")
			}
			_ = deps.Notify.Send(insights, fmt.Sprintf(
				"🔧 **Simulation batch updated for %s**\nTotal messages: **%d**\n\n**Preview (first 10):**\n```%s```",
				targetUser.Username, len(batch), preview,
			))
		}
	}

	return ackErr
}

// captureBatch pulls the newest amount messages for the target and replaces
// any previously captured batch wholesale.
func captureBatch(messages *storage.MessageStore, store *storage.Storage, userID, guildID string, amount int) ([]string, error) {
	docs, err := messages.FindRecent(userID, guildID, amount)
	if err != nil {
		return nil, err
	}

	batch := make([]string, 0, len(docs))
	for _, d := range docs {
		batch = append(batch, d.Content)
	}

	if err := store.UpsertBatch(userID, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

func init() {
	command.RegisterCommand(
		&CaptureMessagesCommand{},
		command.WithGuildOnly(),
		command.WithUserPermissionCheck(),
		command.WithCommandLogger(),
	)
}
