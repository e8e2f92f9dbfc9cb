package ai

import (
	"fmt"

	"mirror-bot/internal/config"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Provider interface {
	Generate(messages []Message) (string, error)
}

func DefaultProvider(cfg *config.Config) Provider {
	switch cfg.AIProvider {
	case "pollinations":
		return NewPollinationsProvider()
	case "g4f":
		return NewG4FProvider()
	case "openai", "":
		return NewOpenAIProvider(cfg.OpenAIAPIKey)
	default:
		panic(fmt.Sprintf("unsupported AI_PROVIDER: %s", cfg.AIProvider))
	}
}
