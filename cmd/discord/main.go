// cmd/discord/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "mirror-bot/internal/command/core"
	_ "mirror-bot/internal/command/simulation"

	"mirror-bot/internal/ai"
	"mirror-bot/internal/analysis"
	"mirror-bot/internal/command"
	"mirror-bot/internal/config"
	"mirror-bot/internal/discord"
	"mirror-bot/internal/persona"
	"mirror-bot/internal/storage"
	"mirror-bot/internal/tracking"
	v "mirror-bot/internal/version"
)

func main() {
	log.Printf("[INFO] Starting %v bot...", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.New()

	// Both stores are optional at boot: the bot keeps running without them
	// and every consumer degrades to a notice or a silent skip.
	messages, err := storage.OpenMessageStore(cfg.MessagesDBPath)
	if err != nil {
		log.Println("[ERR] Message store unavailable, tracking disabled:", err)
		messages = nil
	} else {
		defer messages.Close()
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Println("[ERR] Batch store unavailable, simulation disabled:", err)
		store = nil
	} else {
		defer store.Close()
	}

	bot := discord.NewBot(cfg)
	notify := bot.Notifier(cfg.InsightsChannel)

	engine := analysis.NewEngine(messages, store, ai.DefaultProvider(cfg), persona.DefaultResolver(), notify)
	tracker := tracking.New(messages, engine, notify)

	bot.Attach(&command.Deps{
		Messages: messages,
		Store:    store,
		Engine:   engine,
		Notify:   notify,
	}, tracker)

	errCh := make(chan error, 1)
	go func() {
		if err := bot.Run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Printf("[INFO] Received signal %s, shutting down...", s)
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Println("[ERR] Discord bot error:", err)
		}
		cancel()
	case <-ctx.Done():
	}

	log.Println("[INFO] Discord bot exited cleanly")
}
