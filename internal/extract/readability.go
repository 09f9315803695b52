package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"codeberg.org/readeck/go-readability/v2"

	"NewsBriefing/internal/textutil"
)

// ReadabilityName identifies the heuristic extraction strategy.
const ReadabilityName = "readability"

// ReadabilityExtractor recovers the main content from pages that do not wrap
// their story in a clean semantic element, using readability heuristics.
type ReadabilityExtractor struct{}

func NewReadabilityExtractor() *ReadabilityExtractor {
	return &ReadabilityExtractor{}
}

func (r *ReadabilityExtractor) Name() string { return ReadabilityName }

func (r *ReadabilityExtractor) Extract(page io.Reader, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(page, pageURL)
	if err != nil {
		return "", fmt.Errorf("readability parse: %w", err)
	}

	var buf strings.Builder
	if err := article.RenderText(&buf); err != nil {
		return "", fmt.Errorf("render text: %w", err)
	}
	return textutil.NormalizeWhitespace(buf.String()), nil
}
