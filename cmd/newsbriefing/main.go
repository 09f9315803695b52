package main

import (
	"context"
	"os"

	"NewsBriefing/internal/app"
	"NewsBriefing/internal/config"
	"NewsBriefing/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("briefing run failed", "error", err)
		os.Exit(1)
	}
}
