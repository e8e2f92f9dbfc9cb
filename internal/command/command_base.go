package command

import (
	"mirror-bot/internal/analysis"
	"mirror-bot/internal/storage"

	"github.com/bwmarrin/discordgo"
)

// Deps carries the shared collaborators commands run against. The analysis
// engine is constructed once at process start and injected here; commands
// never build their own.
type Deps struct {
	Messages *storage.MessageStore
	Store    *storage.Storage
	Engine   *analysis.Engine
	Notify   analysis.Notifier
}

type Command interface {
	Name() string
	Description() string
	Group() string
	Category() string
	UserPermissions() []int64
	Run(ctx interface{}) error
}

type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

type SlashContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Deps    *Deps
}
