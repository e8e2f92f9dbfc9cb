// /internal/config/config.go
package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

type Config struct {
	DiscordToken      string `env:"DISCORD_TOKEN,required"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	AIProvider        string `env:"AI_PROVIDER" envDefault:"openai"`
	MessagesDBPath    string `env:"MESSAGES_DB_PATH" envDefault:"messages.db"`
	StoragePath       string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	InsightsChannel   string `env:"INSIGHTS_CHANNEL" envDefault:"ai-insights"`
	InitSlashCommands bool   `env:"INIT_SLASH_COMMANDS" envDefault:"true"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("[ERR] Invalid configuration: %v", err)
	}
	return cfg
}
