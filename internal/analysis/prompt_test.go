package analysis

import (
	"strings"
	"testing"

	"mirror-bot/internal/persona"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptContainsBatchInOrder(t *testing.T) {
	batch := []string{"newest message", "middle message", "oldest message"}

	prompt := BuildPrompt(batch, "mirror", persona.DefaultResolver())

	last := -1
	for _, msg := range batch {
		idx := strings.Index(prompt, msg)
		assert.GreaterOrEqual(t, idx, 0, "prompt must contain %q", msg)
		assert.Greater(t, idx, last, "batch order must be preserved")
		last = idx
	}
}

func TestBuildPromptContainsPersonaStyle(t *testing.T) {
	prompt := BuildPrompt([]string{"hello"}, "mirror", persona.DefaultResolver())

	assert.Contains(t, prompt, "The Mirror")
	assert.Contains(t, prompt, "under 600 words")
	assert.Contains(t, prompt, "feels like a mirror")
}

func TestBuildPromptPersonaCaseInsensitive(t *testing.T) {
	lower := BuildPrompt([]string{"hello"}, "mirror", persona.DefaultResolver())
	upper := BuildPrompt([]string{"hello"}, "MIRROR", persona.DefaultResolver())

	assert.Equal(t, lower, upper)
}

func TestBuildPromptUnknownPersonaFallsBack(t *testing.T) {
	prompt := BuildPrompt([]string{"hello"}, "oracle", persona.DefaultResolver())

	assert.Contains(t, prompt, persona.FallbackStyle())
	assert.Contains(t, prompt, "hello")
}

func TestBuildPromptNilResolverFallsBack(t *testing.T) {
	prompt := BuildPrompt([]string{"hello"}, "mirror", nil)

	assert.Contains(t, prompt, persona.FallbackStyle())
}

func TestBuildPromptEmptyBatch(t *testing.T) {
	prompt := BuildPrompt(nil, "mirror", persona.DefaultResolver())

	assert.Contains(t, prompt, `""""""`)
	assert.Contains(t, prompt, "under 600 words")
}

func TestBuildPromptDeterministic(t *testing.T) {
	batch := []string{"a", "b", "c"}

	first := BuildPrompt(batch, "mirror", persona.DefaultResolver())
	second := BuildPrompt(batch, "mirror", persona.DefaultResolver())

	assert.Equal(t, first, second)
}
