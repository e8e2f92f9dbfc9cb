package command

import (
	"log"
	"time"

	"mirror-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx interface{}) error
}

func (w *wrappedCommand) Run(ctx interface{}) error {
	return w.wrap(ctx)
}

func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

// WithGuildOnly rejects invocations from outside a guild.
func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashContext); ok && v.Event.GuildID == "" {
					_ = v.Session.InteractionRespond(v.Event.Interaction, &discordgo.InteractionResponse{
						Type: discordgo.InteractionResponseChannelMessageWithSource,
						Data: &discordgo.InteractionResponseData{
							Content: "You must be in a guild to use this command.",
							Flags:   discordgo.MessageFlagsEphemeral,
						},
					})
					return nil
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithUserPermissionCheck rejects members that lack every permission the
// command declares. Commands with no declared permissions pass through.
func WithUserPermissionCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				v, ok := ctx.(*SlashContext)
				if !ok {
					return cmd.Run(ctx)
				}

				required := cmd.UserPermissions()
				if len(required) == 0 {
					return cmd.Run(ctx)
				}

				member := v.Event.Member
				if member == nil {
					return cmd.Run(ctx)
				}

				for _, perm := range required {
					if member.Permissions&perm == perm {
						return cmd.Run(ctx)
					}
				}

				_ = v.Session.InteractionRespond(v.Event.Interaction, &discordgo.InteractionResponse{
					Type: discordgo.InteractionResponseChannelMessageWithSource,
					Data: &discordgo.InteractionResponseData{
						Content: "You don't have permission to use this command.",
						Flags:   discordgo.MessageFlagsEphemeral,
					},
				})
				return nil
			},
		}
	}
}

// WithCommandLogger records each invocation in the guild's command history.
// Logging failures never block the command itself.
func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx interface{}) error {
				if v, ok := ctx.(*SlashContext); ok && v.Deps != nil && v.Deps.Store != nil && v.Event.Member != nil {
					err := v.Deps.Store.AppendCommandToHistory(v.Event.GuildID, storage.CommandHistoryRecord{
						ChannelID: v.Event.ChannelID,
						UserID:    v.Event.Member.User.ID,
						Username:  v.Event.Member.User.Username,
						Command:   cmd.Name(),
						Datetime:  time.Now(),
					})
					if err != nil {
						log.Printf("[WARN] Failed to log command %s: %v", cmd.Name(), err)
					}
				}
				return cmd.Run(ctx)
			},
		}
	}
}
