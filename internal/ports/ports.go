package ports

import (
	"context"

	"NewsBriefing/internal/domain"
)

// FeedSource pulls the current headline list from an upstream feed,
// newest entry first.
type FeedSource interface {
	Fetch(ctx context.Context, feedURL string) ([]domain.ArticleRef, error)
}

// ArticleResolver walks the references in order and returns the first one
// whose page yields a readable body.
type ArticleResolver interface {
	Resolve(ctx context.Context, refs []domain.ArticleRef) (domain.ResolvedArticle, error)
}

// Summarizer condenses a resolved article into briefing text.
type Summarizer interface {
	Summarize(ctx context.Context, article domain.ResolvedArticle) (string, error)
}

// Speaker narrates text out loud and blocks until playback completes.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}
