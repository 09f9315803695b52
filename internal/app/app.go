package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"NewsBriefing/internal/config"
	"NewsBriefing/internal/domain"
	"NewsBriefing/internal/extract"
	"NewsBriefing/internal/infrastructure/feed"
	"NewsBriefing/internal/infrastructure/llm"
	"NewsBriefing/internal/infrastructure/scrape"
	"NewsBriefing/internal/infrastructure/tts"
	"NewsBriefing/internal/logging"
	"NewsBriefing/internal/ports"
	"NewsBriefing/internal/usecase"
)

// Application wires configuration into one runnable briefing cycle.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	logger   *slog.Logger
}

// New validates the configuration and builds every adapter the run needs.
// All log lines of a cycle share one run_id attribute.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	logger := baseLogger.With("run_id", uuid.NewString())

	registry := extract.NewRegistry()
	registry.Register(extract.NewSelectorExtractor(cfg.Scraper.Selector))
	registry.Register(extract.NewReadabilityExtractor())

	extractor, err := registry.Resolve(cfg.Scraper.Extractor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	source := feed.NewFetcher(cfg.Feed, nil, logger.With("component", "feed"))
	resolver := scrape.NewResolver(cfg.Scraper, extractor, nil, logger.With("component", "scrape"))
	summarizer := llm.NewClient(cfg.OpenAI, logger.With("component", "llm"))

	speaker, err := buildSpeaker(cfg, logger)
	if err != nil {
		return nil, err
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Resolver:   resolver,
		Summarizer: summarizer,
		Speaker:    speaker,
		Logger:     logger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, logger: logger}, nil
}

func buildSpeaker(cfg config.Config, logger *slog.Logger) (ports.Speaker, error) {
	switch cfg.Speech.Engine {
	case config.EngineLocal:
		return tts.NewLocalSpeaker(cfg.Speech.Local, logger.With("component", "tts"))
	case config.EngineOpenAI:
		return tts.NewRemoteSpeaker(cfg.Speech, cfg.OpenAI.APIKey, logger.With("component", "tts")), nil
	default:
		return nil, fmt.Errorf("%w: unknown speech engine %q", domain.ErrInvalidConfig, cfg.Speech.Engine)
	}
}

// Run performs exactly one briefing cycle.
func (a *Application) Run(ctx context.Context) error {
	a.logger.Info("briefing run started", "feed", a.cfg.Feed.URL)
	return a.pipeline.Run(ctx, a.cfg.Feed.URL)
}
