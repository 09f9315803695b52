// Package textutil flattens HTML fragments into plain text suitable for
// prompts and narration.
package textutil

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// StripTags flattens an HTML fragment to plain text with entities decoded
// and whitespace collapsed. Feed titles and descriptions routinely arrive
// with embedded markup that must not reach the narrated text.
func StripTags(raw string) string {
	if raw == "" {
		return ""
	}
	text := bluemonday.StrictPolicy().Sanitize(raw)
	// Sanitize re-escapes bare entities, undo that before the text is
	// summarized or spoken.
	text = html.UnescapeString(text)
	return NormalizeWhitespace(text)
}

// NormalizeWhitespace collapses every whitespace run into a single space and
// trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
