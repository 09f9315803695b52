package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"NewsBriefing/internal/config"
	"NewsBriefing/internal/domain"
	"NewsBriefing/internal/ports"
)

// Client implements ports.Summarizer backed by OpenAI-compatible
// chat-completions APIs.
type Client struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	temperature  float64
	completions  int
	httpClient   *http.Client
	logger       *slog.Logger
}

var _ ports.Summarizer = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.OpenAIConfig, logger *slog.Logger) *Client {
	return &Client{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		temperature:  cfg.Temperature,
		completions:  cfg.Completions,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		logger: logger,
	}
}

type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []domain.Message `json:"messages"`
	Temperature float64          `json:"temperature"`
	N           int              `json:"n"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Summarize sends the article as a fixed four-turn conversation and returns
// the first completion. Title, description and body each travel in their own
// user turn, even when a field is empty.
func (c *Client) Summarize(ctx context.Context, article domain.ResolvedArticle) (string, error) {
	conv := domain.NewConversation(c.systemPrompt).
		WithUser("Article Title: " + article.Title).
		WithUser("Article Description: " + article.Description).
		WithUser("Article Body: " + article.Body)

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    conv.Messages(),
		Temperature: c.temperature,
		N:           c.completions,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSummarization, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: %s: %s", domain.ErrSummarization, resp.Status, strings.TrimSpace(string(detail)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrSummarization, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", domain.ErrSummarization)
	}

	summary := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrSummarization)
	}

	c.logger.Debug("summary generated", "model", c.model, "length", len(summary))
	return summary, nil
}
