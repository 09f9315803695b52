package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"NewsBriefing/internal/config"
	"NewsBriefing/internal/domain"
	"NewsBriefing/internal/extract"
	"NewsBriefing/internal/ports"
)

// Resolver downloads article pages and finds the first reference whose page
// yields a readable body.
type Resolver struct {
	client    *http.Client
	extractor extract.Extractor
	userAgent string
	robots    *robotsCache
	logger    *slog.Logger
}

var _ ports.ArticleResolver = (*Resolver)(nil)

// NewResolver builds a resolver around the configured extraction strategy.
// A custom client can be injected, pass nil for the default. Robots rules
// are honored unless disabled in configuration.
func NewResolver(cfg config.ScraperConfig, extractor extract.Extractor, client *http.Client, logger *slog.Logger) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	r := &Resolver{
		client:    client,
		extractor: extractor,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
	if !cfg.IgnoreRobots {
		r.robots = newRobotsCache(client, cfg.UserAgent)
	}
	return r
}

// Resolve walks the references in feed order. Every page problem counts as a
// miss and moves on to the next reference. The returned article always
// carries the title and description of the first reference, the briefing
// leads with the newest headline even when an older entry supplied the body.
func (r *Resolver) Resolve(ctx context.Context, refs []domain.ArticleRef) (domain.ResolvedArticle, error) {
	for i, ref := range refs {
		body, err := r.extractBody(ctx, ref.Link)
		if err != nil {
			r.logger.Warn("skipping reference", "position", i, "link", ref.Link, "error", err)
			continue
		}
		if body == "" {
			r.logger.Warn("skipping reference, no body found", "position", i, "link", ref.Link)
			continue
		}

		r.logger.Debug("article resolved", "position", i, "link", ref.Link, "body_length", len(body))
		return domain.ResolvedArticle{
			Title:       refs[0].Title,
			Description: refs[0].Description,
			Body:        body,
		}, nil
	}

	return domain.ResolvedArticle{}, fmt.Errorf("%w: tried %d references", domain.ErrNoArticleFound, len(refs))
}

func (r *Resolver) extractBody(ctx context.Context, link string) (string, error) {
	pageURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid link: %w", err)
	}
	if pageURL.Host == "" {
		return "", fmt.Errorf("invalid link %q", link)
	}

	if r.robots != nil && !r.robots.allowed(ctx, pageURL) {
		return "", fmt.Errorf("disallowed by robots.txt")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	body, err := r.extractor.Extract(resp.Body, pageURL)
	if err != nil {
		return "", fmt.Errorf("extract body: %w", err)
	}
	return body, nil
}
