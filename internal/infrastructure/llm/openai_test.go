package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsBriefing/internal/config"
	"NewsBriefing/internal/domain"
)

type capturedChat struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	N           int     `json:"n"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(endpoint string) *Client {
	return NewClient(config.OpenAIConfig{
		Endpoint:       endpoint,
		Model:          "gpt-3.5-turbo",
		APIKey:         "sk-test",
		SystemPrompt:   "You are delivering a daily news briefing.",
		Temperature:    0.5,
		Completions:    1,
		TimeoutSeconds: 5,
	}, discardLogger())
}

func TestSummarizeSendsFourTurnConversation(t *testing.T) {
	t.Parallel()

	var got capturedChat
	var auth, contentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  A calm summary.  "}}]}`))
	}))
	defer server.Close()

	article := domain.ResolvedArticle{
		Title:       "Reservoir levels fall",
		Description: "A dry spring leaves supplies low.",
		Body:        "Water companies urged households to cut usage.",
	}

	summary, err := newTestClient(server.URL).Summarize(context.Background(), article)
	require.NoError(t, err)
	assert.Equal(t, "A calm summary.", summary)

	assert.Equal(t, "Bearer sk-test", auth)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, "gpt-3.5-turbo", got.Model)
	assert.InDelta(t, 0.5, got.Temperature, 0.0001)
	assert.Equal(t, 1, got.N)

	require.Len(t, got.Messages, 4)
	assert.Equal(t, domain.RoleSystem, got.Messages[0].Role)
	assert.Equal(t, "You are delivering a daily news briefing.", got.Messages[0].Content)
	assert.Equal(t, domain.RoleUser, got.Messages[1].Role)
	assert.Equal(t, "Article Title: Reservoir levels fall", got.Messages[1].Content)
	assert.Equal(t, "Article Description: A dry spring leaves supplies low.", got.Messages[2].Content)
	assert.Equal(t, "Article Body: Water companies urged households to cut usage.", got.Messages[3].Content)
}

func TestSummarizeKeepsEmptyFieldsAsTurns(t *testing.T) {
	t.Parallel()

	var got capturedChat
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	article := domain.ResolvedArticle{Body: "Only a body survived extraction."}

	_, err := newTestClient(server.URL).Summarize(context.Background(), article)
	require.NoError(t, err)

	require.Len(t, got.Messages, 4)
	assert.Equal(t, "Article Title: ", got.Messages[1].Content)
	assert.Equal(t, "Article Description: ", got.Messages[2].Content)
	assert.Equal(t, "Article Body: Only a body survived extraction.", got.Messages[3].Content)
}

func TestSummarizeServerErrorMapsToSummarization(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Summarize(context.Background(), domain.ResolvedArticle{Body: "text"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSummarization))
	assert.Contains(t, err.Error(), "rate limited")
}

func TestSummarizeNoChoicesMapsToSummarization(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Summarize(context.Background(), domain.ResolvedArticle{Body: "text"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSummarization))
}

func TestSummarizeBlankCompletionMapsToSummarization(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"   "}}]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Summarize(context.Background(), domain.ResolvedArticle{Body: "text"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSummarization))
}
