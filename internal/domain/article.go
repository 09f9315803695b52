package domain

// ArticleRef is a single feed entry: headline metadata plus the page link.
// Immutable once parsed; title and description are plain text with any feed
// markup already stripped.
type ArticleRef struct {
	Title       string
	Description string
	Link        string
}

// ResolvedArticle pairs headline metadata with a scraped body. It lives for
// one briefing run only.
type ResolvedArticle struct {
	Title       string
	Description string
	Body        string
}

// Stage enumerates run milestones.
type Stage string

const (
	StageFetched    Stage = "fetched"
	StageResolved   Stage = "resolved"
	StageSummarized Stage = "summarized"
	StageSpoken     Stage = "spoken"
)
