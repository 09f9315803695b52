package domain

import "errors"

// Feed errors.
var (
	// ErrFeedUnavailable indicates the feed request itself failed: network
	// trouble, a timeout, or a non-success status.
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrFeedMalformed indicates the response could not be parsed as a
	// syndication feed.
	ErrFeedMalformed = errors.New("feed malformed")
)

// Resolution errors.
var (
	// ErrNoArticleFound indicates no feed entry yielded an extractable body.
	ErrNoArticleFound = errors.New("no article with extractable body")
)

// External service errors.
var (
	// ErrSummarization indicates the completion endpoint failed or returned
	// nothing usable.
	ErrSummarization = errors.New("summarization failed")

	// ErrSynthesis indicates the speech endpoint failed to produce audio.
	ErrSynthesis = errors.New("speech synthesis failed")

	// ErrPlayback indicates a synthesized artifact could not be played.
	ErrPlayback = errors.New("audio playback failed")

	// ErrEngineUnavailable indicates the on-device speech engine is missing
	// or not runnable.
	ErrEngineUnavailable = errors.New("speech engine unavailable")
)

// Configuration errors.
var (
	// ErrInvalidConfig indicates startup configuration the run cannot
	// proceed with.
	ErrInvalidConfig = errors.New("invalid configuration")
)
