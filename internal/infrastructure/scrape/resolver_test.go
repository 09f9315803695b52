package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsBriefing/internal/config"
	"NewsBriefing/internal/domain"
	"NewsBriefing/internal/extract"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestResolver(client *http.Client) *Resolver {
	cfg := config.ScraperConfig{
		UserAgent:      "NewsBriefing-test",
		TimeoutSeconds: 5,
	}
	return NewResolver(cfg, extract.NewSelectorExtractor(""), client, discardLogger())
}

func articlePage(body string) string {
	return fmt.Sprintf(`<html><body><nav>menu</nav><article><p>%s</p></article></body></html>`, body)
}

func bodylessPage() string {
	return `<html><body><div class="teaser">Subscribe to read more.</div></body></html>`
}

// recordingMux counts requests per path so tests can assert what was fetched.
type recordingMux struct {
	mu   sync.Mutex
	hits map[string]int
	mux  *http.ServeMux
}

func newRecordingMux() *recordingMux {
	return &recordingMux{hits: map[string]int{}, mux: http.NewServeMux()}
}

func (r *recordingMux) handle(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

func (r *recordingMux) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.hits[req.URL.Path]++
	r.mu.Unlock()
	r.mux.ServeHTTP(w, req)
}

func (r *recordingMux) count(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[path]
}

func TestResolveUsesFirstPageWithBody(t *testing.T) {
	t.Parallel()

	mux := newRecordingMux()
	mux.handle("/one", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bodylessPage()))
	})
	mux.handle("/two", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articlePage("Second story body text.")))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	refs := []domain.ArticleRef{
		{Title: "Newest headline", Description: "Newest description", Link: server.URL + "/one"},
		{Title: "Older headline", Description: "Older description", Link: server.URL + "/two"},
	}

	article, err := newTestResolver(nil).Resolve(context.Background(), refs)
	require.NoError(t, err)

	// Headline metadata stays pinned to the first reference.
	assert.Equal(t, "Newest headline", article.Title)
	assert.Equal(t, "Newest description", article.Description)
	assert.Equal(t, "Second story body text.", article.Body)
}

func TestResolveSkipsFailingPages(t *testing.T) {
	t.Parallel()

	mux := newRecordingMux()
	mux.handle("/gone", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.handle("/story", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articlePage("Recovered after a missing page.")))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	refs := []domain.ArticleRef{
		{Title: "First", Link: server.URL + "/gone"},
		{Title: "Second", Link: "not a url at all"},
		{Title: "Third", Link: server.URL + "/story"},
	}

	article, err := newTestResolver(nil).Resolve(context.Background(), refs)
	require.NoError(t, err)
	assert.Equal(t, "First", article.Title)
	assert.Equal(t, "Recovered after a missing page.", article.Body)
}

func TestResolveExhaustedReturnsNoArticleFound(t *testing.T) {
	t.Parallel()

	mux := newRecordingMux()
	mux.handle("/one", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bodylessPage()))
	})
	mux.handle("/two", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	refs := []domain.ArticleRef{
		{Title: "First", Link: server.URL + "/one"},
		{Title: "Second", Link: server.URL + "/two"},
	}

	_, err := newTestResolver(nil).Resolve(context.Background(), refs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoArticleFound))
}

func TestResolveEmptyRefsReturnsNoArticleFound(t *testing.T) {
	t.Parallel()

	_, err := newTestResolver(nil).Resolve(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoArticleFound))
}

func TestResolveHonorsRobots(t *testing.T) {
	t.Parallel()

	mux := newRecordingMux()
	mux.handle("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private/\n"))
	})
	mux.handle("/private/story", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articlePage("Should never be fetched.")))
	})
	mux.handle("/public/story", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articlePage("Open to crawlers.")))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	refs := []domain.ArticleRef{
		{Title: "Blocked", Link: server.URL + "/private/story"},
		{Title: "Allowed", Link: server.URL + "/public/story"},
	}

	article, err := newTestResolver(nil).Resolve(context.Background(), refs)
	require.NoError(t, err)
	assert.Equal(t, "Open to crawlers.", article.Body)
	assert.Equal(t, 0, mux.count("/private/story"))
	// robots.txt is fetched once per host, not once per reference.
	assert.Equal(t, 1, mux.count("/robots.txt"))
}

func TestResolveMissingRobotsAllowsEverything(t *testing.T) {
	t.Parallel()

	mux := newRecordingMux()
	mux.handle("/story", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articlePage("No robots file on this host.")))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	refs := []domain.ArticleRef{{Title: "Only", Link: server.URL + "/story"}}

	article, err := newTestResolver(nil).Resolve(context.Background(), refs)
	require.NoError(t, err)
	assert.Equal(t, "No robots file on this host.", article.Body)
}
