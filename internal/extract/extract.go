package extract

import (
	"fmt"
	"io"
	"net/url"
)

// Extractor captures a single body-extraction strategy (CSS selector,
// readability, etc.).
type Extractor interface {
	Name() string
	// Extract returns the plain-text article body found in the page, or an
	// empty string when the page carries no recognizable body.
	Extract(page io.Reader, pageURL *url.URL) (string, error)
}

// Registry keeps a mapping from extractor names to their implementations.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: map[string]Extractor{}}
}

// Register adds or replaces an extractor implementation.
func (r *Registry) Register(extractor Extractor) {
	if r.extractors == nil {
		r.extractors = map[string]Extractor{}
	}
	r.extractors[extractor.Name()] = extractor
}

// Resolve returns an extractor by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Extractor, error) {
	if extractor, ok := r.extractors[name]; ok {
		return extractor, nil
	}
	return nil, fmt.Errorf("extractor %s is not registered", name)
}
