package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"NewsBriefing/internal/config"
	"NewsBriefing/internal/domain"
	"NewsBriefing/internal/ports"
)

// engineCandidates lists known synthesis binaries in auto-detection order.
var engineCandidates = []string{"say", "espeak-ng", "espeak"}

// LocalSpeaker narrates through an on-device synthesis binary. The command
// blocks until the utterance finishes, so Speak does too.
type LocalSpeaker struct {
	binary string
	voice  string
	rate   int
	volume float64
	run    func(ctx context.Context, name string, args ...string) error
	logger *slog.Logger
}

var _ ports.Speaker = (*LocalSpeaker)(nil)

// NewLocalSpeaker resolves the engine binary up front so a missing engine
// surfaces at startup, not mid-run.
func NewLocalSpeaker(cfg config.LocalEngineConfig, logger *slog.Logger) (*LocalSpeaker, error) {
	binary := cfg.Binary
	if binary == "" {
		binary = detectEngine()
		if binary == "" {
			return nil, fmt.Errorf("%w: no engine binary found (tried %s)",
				domain.ErrEngineUnavailable, strings.Join(engineCandidates, ", "))
		}
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}

	return &LocalSpeaker{
		binary: binary,
		voice:  cfg.Voice,
		rate:   cfg.Rate,
		volume: cfg.Volume,
		run:    runCommand,
		logger: logger,
	}, nil
}

func detectEngine() string {
	for _, candidate := range engineCandidates {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func (l *LocalSpeaker) Speak(ctx context.Context, text string) error {
	l.logger.Debug("speaking via local engine", "binary", l.binary)
	if err := l.run(ctx, l.binary, l.args(text)...); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrEngineUnavailable, l.binary, err)
	}
	return nil
}

// args maps rate, volume and voice onto the flag dialect of the engine.
func (l *LocalSpeaker) args(text string) []string {
	var args []string
	switch filepath.Base(l.binary) {
	case "say":
		if l.rate > 0 {
			args = append(args, "-r", strconv.Itoa(l.rate))
		}
		if l.voice != "" {
			args = append(args, "-v", l.voice)
		}
	default:
		// espeak dialect. Amplitude runs 0..200 with 100 as the default,
		// so full volume maps to 100.
		if l.rate > 0 {
			args = append(args, "-s", strconv.Itoa(l.rate))
		}
		if l.volume > 0 {
			args = append(args, "-a", strconv.Itoa(int(l.volume*100)))
		}
		if l.voice != "" {
			args = append(args, "-v", l.voice)
		}
	}
	return append(args, text)
}

func runCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}
