package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"NewsBriefing/internal/config"
	"NewsBriefing/internal/domain"
	"NewsBriefing/internal/ports"
	"NewsBriefing/internal/textutil"
)

const userAgent = "NewsBriefing/1.0"

// Fetcher pulls headline references from a syndication feed. RSS and Atom
// are both handled, item order is preserved as published.
type Fetcher struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

var _ ports.FeedSource = (*Fetcher)(nil)

// NewFetcher builds a fetcher around the configured HTTP timeout. A custom
// client can be injected, pass nil for the default.
func NewFetcher(cfg config.FeedConfig, client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = userAgent
	return &Fetcher{parser: parser, logger: logger}
}

// Fetch downloads and parses the feed. Transport failures and non-success
// statuses map to domain.ErrFeedUnavailable, undecodable payloads to
// domain.ErrFeedMalformed.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]domain.ArticleRef, error) {
	parsed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, fmt.Errorf("%w: %s returned %s", domain.ErrFeedUnavailable, feedURL, httpErr.Status)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrFeedMalformed, err)
	}

	refs := make([]domain.ArticleRef, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		refs = append(refs, domain.ArticleRef{
			Title:       textutil.StripTags(item.Title),
			Description: textutil.StripTags(item.Description),
			Link:        strings.TrimSpace(item.Link),
		})
	}

	f.logger.Debug("feed parsed", "url", feedURL, "items", len(refs))
	return refs, nil
}
