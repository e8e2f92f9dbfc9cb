package core

import (
	"fmt"
	"sort"
	"strings"

	"mirror-bot/internal/command"
	"mirror-bot/internal/config"
	"mirror-bot/internal/discord"
	"mirror-bot/internal/version"

	"github.com/bwmarrin/discordgo"
)

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Get a list of available commands" }
func (c *HelpCommand) Group() string       { return "core" }
func (c *HelpCommand) Category() string    { return "🕯️ Information" }
func (c *HelpCommand) UserPermissions() []int64 {
	return []int64{}
}

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *HelpCommand) Run(ctx interface{}) error {
	slash, ok := ctx.(*command.SlashContext)
	if !ok {
		return nil
	}

	content := fmt.Sprintf("**%s %s**\n\n%s", version.AppName, version.AppVersion, buildHelpByCategory())
	return discord.RespondEphemeral(slash.Session, slash.Event, content)
}

func buildHelpByCategory() string {
	all := command.All()

	byCategory := make(map[string][]command.Command)
	for _, cmd := range all {
		byCategory[cmd.Category()] = append(byCategory[cmd.Category()], cmd)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool {
		wi, wj := config.CategoryWeights[categories[i]], config.CategoryWeights[categories[j]]
		if wi != wj {
			return wi < wj
		}
		return categories[i] < categories[j]
	})

	var sb strings.Builder
	for _, cat := range categories {
		sb.WriteString(fmt.Sprintf("**%s**\n", cat))
		cmds := byCategory[cat]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
		for _, cmd := range cmds {
			sb.WriteString(fmt.Sprintf("`/%s` - %s\n", cmd.Name(), cmd.Description()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func init() {
	command.RegisterCommand(
		&HelpCommand{},
		command.WithCommandLogger(),
	)
}
