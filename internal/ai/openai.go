// openai.go
package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type OpenAIProvider struct {
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
}

func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{
		apiKey:    apiKey,
		model:     "gpt-4o-mini",
		maxTokens: 800,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *OpenAIProvider) Generate(messages []Message) (string, error) {
	if p.apiKey == "" {
		return "", fmt.Errorf("openai: OPENAI_API_KEY is not set")
	}

	payload := map[string]interface{}{
		"model":      p.model,
		"messages":   messages,
		"max_tokens": p.maxTokens,
	}
	bodyBytes, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, "https://api.openai.com/v1/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d: %s", resp.StatusCode, truncate(respBody))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("openai unmarshal: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai empty choices")
	}

	return cleanReply(parsed.Choices[0].Message.Content), nil
}
