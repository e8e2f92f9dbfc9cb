// Package analysis runs the Mirror pipeline: collect a message batch (live
// history or a frozen simulation batch), build a prompt, invoke the model
// and deliver the result to the insights channel.
package analysis

import (
	"fmt"
	"log"
	"strings"

	"mirror-bot/internal/ai"
	"mirror-bot/internal/persona"
	"mirror-bot/internal/storage"
)

const (
	// liveBatchLimit caps how much history feeds one live analysis.
	liveBatchLimit = 250

	// chunkSize keeps each delivery under the Discord message limit.
	chunkSize = 1900

	personaName = "mirror"
)

// Notifier delivers analysis output and progress notices.
type Notifier interface {
	Send(channelID, content string) error
	InsightsChannel() (string, bool)
}

// Engine orchestrates analysis runs. Both entry points swallow every
// internal failure: the worst outcome is a missing notice, never a panic or
// an error pushed back at the caller.
type Engine struct {
	messages *storage.MessageStore
	batches  *storage.Storage
	provider ai.Provider
	personas persona.Resolver
	notify   Notifier
}

func NewEngine(messages *storage.MessageStore, batches *storage.Storage, provider ai.Provider, personas persona.Resolver, notify Notifier) *Engine {
	return &Engine{
		messages: messages,
		batches:  batches,
		provider: provider,
		personas: personas,
		notify:   notify,
	}
}

// RunLiveAnalysis analyzes the newest stored messages for the user in the
// given guild.
func (e *Engine) RunLiveAnalysis(userID, guildID, displayName string) {
	insights, ok := e.notify.InsightsChannel()
	if !ok {
		log.Println("[WARN] No insights channel found, skipping live analysis")
		return
	}

	if e.messages == nil {
		e.send(insights, "⚠️ No database connection for analysis.")
		return
	}

	docs, err := e.messages.FindRecent(userID, guildID, liveBatchLimit)
	if err != nil {
		log.Printf("[ERR] Live analysis query failed for %s/%s: %v", userID, guildID, err)
		e.send(insights, "⚠️ No database connection for analysis.")
		return
	}
	if len(docs) == 0 {
		e.send(insights, fmt.Sprintf("⚠️ No messages found for <@%s>.", userID))
		return
	}

	batch := make([]string, 0, len(docs))
	for _, d := range docs {
		batch = append(batch, d.Content)
	}

	prompt := BuildPrompt(batch, personaName, e.personas)

	e.send(insights, fmt.Sprintf("📥 **Collected %d messages for %s. Running Mirror analysis...**", len(batch), displayName))

	summary, err := e.generate(prompt)
	if err != nil {
		log.Printf("[ERR] Mirror generation failed for %s: %v", userID, err)
		e.send(insights, "⚠️ Analysis failed (model issue).")
		return
	}

	e.sendSummary(insights, fmt.Sprintf("🪞 **The Mirror — Analysis for %s (<@%s>)**", displayName, userID), summary)
}

// RunSimulationAnalysis analyzes the user's captured simulation batch
// instead of live history. Batches are keyed by user only, so no guild is
// taken here.
func (e *Engine) RunSimulationAnalysis(userID string) {
	insights, ok := e.notify.InsightsChannel()
	if !ok {
		log.Println("[WARN] No insights channel found, skipping simulation analysis")
		return
	}

	if e.batches == nil {
		e.send(insights, "⚠️ No simulation batch store available.")
		return
	}

	batch, found, err := e.batches.Batch(userID)
	if err != nil {
		log.Printf("[ERR] Simulation batch lookup failed for %s: %v", userID, err)
		e.send(insights, "⚠️ No simulation batch store available.")
		return
	}
	if !found || len(batch.Messages) == 0 {
		e.send(insights, fmt.Sprintf("⚠️ No simulation batch found for <@%s>.", userID))
		return
	}

	prompt := BuildPrompt(batch.Messages, personaName, e.personas)

	e.send(insights, fmt.Sprintf("🧪 **Simulation analysis triggered for <@%s> (The Mirror).**", userID))

	summary, err := e.generate(prompt)
	if err != nil {
		log.Printf("[ERR] Simulation generation failed for %s: %v", userID, err)
		e.send(insights, "⚠️ Simulation analysis failed.")
		return
	}

	e.sendSummary(insights, fmt.Sprintf("🪞 **The Mirror — Simulation Analysis for <@%s>**", userID), summary)
}

func (e *Engine) generate(prompt string) (string, error) {
	if e.provider == nil {
		return "", fmt.Errorf("no model provider configured")
	}

	reply, err := e.provider.Generate([]ai.Message{
		{Role: "system", Content: "You analyze communication patterns."},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("model returned an empty reply")
	}
	return reply, nil
}

// send delivers best-effort: a failed delivery is logged and forgotten.
func (e *Engine) send(channelID, content string) {
	if err := e.notify.Send(channelID, content); err != nil {
		log.Printf("[WARN] Failed to deliver notice: %v", err)
	}
}

// sendSummary delivers a header followed by the summary in fenced chunks.
func (e *Engine) sendSummary(channelID, header, summary string) {
	e.send(channelID, header)
	for _, chunk := range chunkText(summary, chunkSize) {
		e.send(channelID, "```markdown\n"+chunk+"\n```")
	}
}

// chunkText splits s into chunks of at most size bytes. Splits may land
// mid-word; concatenating the chunks restores s exactly.
func chunkText(s string, size int) []string {
	var chunks []string
	for len(s) > size {
		chunks = append(chunks, s[:size])
		s = s[size:]
	}
	if len(s) > 0 {
		chunks = append(chunks, s)
	}
	return chunks
}
