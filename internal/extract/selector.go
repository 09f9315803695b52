package extract

import (
	"fmt"
	"io"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"NewsBriefing/internal/textutil"
)

// SelectorName identifies the CSS-selector extraction strategy.
const SelectorName = "selector"

// DefaultSelector matches the semantic element most news sites wrap their
// story text in.
const DefaultSelector = "article"

// SelectorExtractor pulls the body out of the first element matching a CSS
// selector. Pages without a match yield an empty body, which the caller
// treats as a miss.
type SelectorExtractor struct {
	selector string
}

// NewSelectorExtractor builds the strategy around the given selector, falling
// back to DefaultSelector when it is empty.
func NewSelectorExtractor(selector string) *SelectorExtractor {
	if selector == "" {
		selector = DefaultSelector
	}
	return &SelectorExtractor{selector: selector}
}

func (s *SelectorExtractor) Name() string { return SelectorName }

func (s *SelectorExtractor) Extract(page io.Reader, _ *url.URL) (string, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}
	// Inline scripts and styles would otherwise leak into the narrated text.
	doc.Find("script, style, noscript").Remove()

	match := doc.Find(s.selector).First()
	if match.Length() == 0 {
		return "", nil
	}
	return textutil.NormalizeWhitespace(match.Text()), nil
}
