// /internal/discord/bot.go
package discord

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"mirror-bot/internal/command"
	"mirror-bot/internal/config"
	"mirror-bot/internal/tracking"

	"github.com/bwmarrin/discordgo"
)

// Bot is the Discord front end: it feeds message events into the tracker
// and dispatches slash commands against the shared dependencies.
type Bot struct {
	mu      sync.RWMutex
	dg      *discordgo.Session
	cfg     *config.Config
	deps    *command.Deps
	tracker *tracking.Tracker
}

func NewBot(cfg *config.Config) *Bot {
	return &Bot{cfg: cfg}
}

// Attach wires in the collaborators built at process start. Must be called
// before Run.
func (b *Bot) Attach(deps *command.Deps, tracker *tracking.Tracker) {
	b.deps = deps
	b.tracker = tracker
}

// Run connects to Discord and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	dg, err := discordgo.New("Bot " + b.cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsAll

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onGuildCreate)

	b.mu.Lock()
	b.dg = dg
	b.mu.Unlock()

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	return nil
}

func (b *Bot) session() *discordgo.Session {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dg
}

// onReady is called when the gateway connection is established.
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	botInfo, err := s.User("@me")
	if err != nil {
		log.Println("[WARN] Error retrieving bot user:", err)
		return
	}

	for _, g := range r.Guilds {
		if b.cfg.InitSlashCommands {
			if err := b.registerCommands(g.ID); err != nil {
				log.Println("[ERR] Error registering slash commands for guild", g.ID, ":", err)
			}
		} else {
			log.Println("[INFO] Registering slash commands skipped")
		}
	}

	log.Printf("[INFO] ✅ Discord bot %v is running.", botInfo.Username)
}

// onGuildCreate is called when the bot joins a guild.
func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.ID, g.Guild.Name)

	if err := b.registerCommands(g.Guild.ID); err != nil {
		log.Printf("[ERR] Failed to register commands for new guild %s: %v", g.Guild.ID, err)
	}
}

// onMessageCreate forwards every inbound message to the tracker; the
// tracker does its own filtering.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}
	if b.tracker == nil {
		return
	}

	b.tracker.Process(eventFromMessage(m))
}

func eventFromMessage(m *discordgo.MessageCreate) tracking.Event {
	displayName := m.Author.Username
	if m.Member != nil && m.Member.Nick != "" {
		displayName = m.Member.Nick
	}

	return tracking.Event{
		UserID:      m.Author.ID,
		GuildID:     m.GuildID,
		ChannelID:   m.ChannelID,
		DisplayName: displayName,
		Content:     m.Content,
		Timestamp:   m.Timestamp,
		FromBot:     m.Author.Bot,
		DM:          m.GuildID == "",
		HasMedia:    len(m.Attachments) > 0 || len(m.Embeds) > 0 || len(m.StickerItems) > 0,
	}
}

// onInteractionCreate dispatches slash commands.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	cmdName := i.ApplicationCommandData().Name
	cmd, ok := command.Get(cmdName)
	if !ok {
		log.Printf("[WARN] Unknown command: %s", cmdName)
		return
	}

	ctx := &command.SlashContext{
		Session: s,
		Event:   i,
		Deps:    b.deps,
	}
	if err := cmd.Run(ctx); err != nil {
		log.Println("[ERR] Error running slash command:", err)
		_ = RespondEphemeral(s, i, fmt.Sprintf("Error running command: %v", err))
	}
}

// registerCommands syncs the registry against the guild's live commands:
// obsolete ones are deleted, wanted ones are (re)created.
func (b *Bot) registerCommands(guildID string) error {
	dg := b.session()

	appID := dg.State.User.ID
	if appID == "" {
		user, err := dg.User("@me")
		if err != nil {
			return err
		}
		appID = user.ID
	}

	var wanted []*discordgo.ApplicationCommand
	wantedNames := make(map[string]bool)
	for _, cmd := range command.All() {
		if sp, ok := cmd.(command.SlashProvider); ok {
			if def := sp.SlashDefinition(); def != nil {
				wanted = append(wanted, def)
				wantedNames[def.Name] = true
			}
		}
	}

	existing, _ := dg.ApplicationCommands(appID, guildID)
	for _, old := range existing {
		if !wantedNames[old.Name] {
			log.Printf("[INFO] [%s] Deleting obsolete command: %s", guildID, old.Name)
			if err := dg.ApplicationCommandDelete(appID, guildID, old.ID); err != nil {
				log.Printf("[ERR] [%s] Failed to delete %s: %v", guildID, old.Name, err)
			}
		}
	}

	registerCommandsWithRateLimit(dg, appID, guildID, wanted)
	return nil
}

// registerCommandsWithRateLimit creates commands no faster than the Discord
// rate limit allows.
func registerCommandsWithRateLimit(dg *discordgo.Session, appID, guildID string, cmds []*discordgo.ApplicationCommand) {
	rateLimit := time.Second / 40
	ticker := time.NewTicker(rateLimit)
	defer ticker.Stop()

	var wg sync.WaitGroup

	for _, job := range cmds {
		wg.Add(1)

		go func(cmd *discordgo.ApplicationCommand) {
			defer wg.Done()
			<-ticker.C

			_, err := dg.ApplicationCommandCreate(appID, guildID, cmd)
			if err != nil {
				log.Printf("[ERR] Can't create command %s: %v", cmd.Name, err)
			} else {
				log.Printf("[DONE] Command created: %s", cmd.Name)
			}
		}(job)
	}

	wg.Wait()
}
