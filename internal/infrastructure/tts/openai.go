package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"NewsBriefing/internal/config"
	"NewsBriefing/internal/domain"
	"NewsBriefing/internal/ports"
)

// RemoteSpeaker synthesizes speech through an OpenAI-compatible audio
// endpoint, persists the MP3 artifact and plays it from disk.
type RemoteSpeaker struct {
	endpoint   string
	model      string
	voice      string
	apiKey     string
	outputPath string
	httpClient *http.Client
	play       func(path string) error
	logger     *slog.Logger
}

var _ ports.Speaker = (*RemoteSpeaker)(nil)

// NewRemoteSpeaker builds a speaker from configuration. Relative output
// paths are anchored next to the executable.
func NewRemoteSpeaker(cfg config.SpeechConfig, apiKey string, logger *slog.Logger) *RemoteSpeaker {
	return &RemoteSpeaker{
		endpoint:   cfg.Endpoint,
		model:      cfg.Model,
		voice:      cfg.Voice,
		apiKey:     apiKey,
		outputPath: resolveOutputPath(cfg.OutputPath),
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
		play:   playFile,
		logger: logger,
	}
}

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

// Speak synthesizes the text and plays the resulting artifact exactly once.
// When synthesis fails no playback is attempted.
func (s *RemoteSpeaker) Speak(ctx context.Context, text string) error {
	audio, err := s.synthesize(ctx, text)
	if err != nil {
		return err
	}

	if err := writeArtifact(s.outputPath, audio); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPlayback, err)
	}
	s.logger.Debug("audio artifact written", "path", s.outputPath, "bytes", len(audio))

	if err := s.play(s.outputPath); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPlayback, err)
	}
	return nil
}

func (s *RemoteSpeaker) synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(speechRequest{
		Model: s.model,
		Voice: s.voice,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal speech payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesis, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrSynthesis, resp.Status, strings.TrimSpace(string(detail)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read audio: %v", domain.ErrSynthesis, err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%w: endpoint returned no audio", domain.ErrSynthesis)
	}
	return audio, nil
}

// writeArtifact persists the audio and syncs it so the player never opens a
// half-written file.
func writeArtifact(path string, audio []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(audio); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	return f.Close()
}

func resolveOutputPath(path string) string {
	if path == "" {
		path = "news.mp3"
	}
	if filepath.IsAbs(path) {
		return path
	}
	exe, err := os.Executable()
	if err != nil {
		return path
	}
	return filepath.Join(filepath.Dir(exe), path)
}
