package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"NewsBriefing/internal/domain"
	"NewsBriefing/internal/ports"
)

// PipelineDeps wires all driven adapters into the briefing pipeline.
type PipelineDeps struct {
	Source     ports.FeedSource
	Resolver   ports.ArticleResolver
	Summarizer ports.Summarizer
	Speaker    ports.Speaker
	Out        io.Writer
	Logger     *slog.Logger
}

// Pipeline implements the fetch, resolve, summarize, speak workflow. One Run
// call is one briefing cycle, there is no internal retrying.
type Pipeline struct {
	source     ports.FeedSource
	resolver   ports.ArticleResolver
	summarizer ports.Summarizer
	speaker    ports.Speaker
	out        io.Writer
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component. Out defaults to
// stdout, where the summary is printed before narration starts.
func NewPipeline(deps PipelineDeps) *Pipeline {
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	return &Pipeline{
		source:     deps.Source,
		resolver:   deps.Resolver,
		summarizer: deps.Summarizer,
		speaker:    deps.Speaker,
		out:        out,
		logger:     deps.Logger,
	}
}

// Run executes one briefing cycle against the given feed. The first failing
// step aborts the cycle, later steps are never attempted.
func (p *Pipeline) Run(ctx context.Context, feedURL string) error {
	refs, err := p.source.Fetch(ctx, feedURL)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}
	p.logger.Info("feed fetched", "stage", domain.StageFetched, "items", len(refs))

	article, err := p.resolver.Resolve(ctx, refs)
	if err != nil {
		return fmt.Errorf("resolve article: %w", err)
	}
	p.logger.Info("article resolved", "stage", domain.StageResolved,
		"title", article.Title, "body_length", len(article.Body))

	summary, err := p.summarizer.Summarize(ctx, article)
	if err != nil {
		return fmt.Errorf("summarize article: %w", err)
	}
	p.logger.Info("summary generated", "stage", domain.StageSummarized, "length", len(summary))

	fmt.Fprintln(p.out, summary)

	if err := p.speaker.Speak(ctx, summary); err != nil {
		return fmt.Errorf("speak summary: %w", err)
	}
	p.logger.Info("briefing narrated", "stage", domain.StageSpoken)

	return nil
}
