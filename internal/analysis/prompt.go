package analysis

import (
	"fmt"
	"strings"

	"mirror-bot/internal/persona"
)

// BuildPrompt assembles the model prompt for one batch of user messages.
// Batch order is preserved as given (callers pass newest first). An empty
// batch is legal and yields a prompt with an empty quoted section.
func BuildPrompt(batch []string, personaName string, styles persona.Resolver) string {
	joined := strings.Join(batch, "\n")

	style := persona.FallbackStyle()
	if styles != nil {
		style = styles.StyleFor(personaName)
	}

	return fmt.Sprintf(`%s

You will receive a batch of this user's recent Discord messages.
These may include profanity, strong opinions, or socially condemned views.

Your job:
- Analyze their tone, emotional cycles, and identity themes.
- Describe their communication patterns and rigidity.
- Do NOT judge, argue, or advise.
- Reflect what is present.

Messages:
"""%s"""

Write a structured analysis under 600 words.
End with one sentence that feels like a mirror.
`, style, joined)
}
