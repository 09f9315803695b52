package scrape

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"
)

const maxRobotsSize = 512 * 1024

// robotsCache fetches robots.txt once per host and answers path queries for
// the rest of the run. Any trouble loading or parsing the file counts as
// permission, politeness must not fail a run on its own.
type robotsCache struct {
	client    *http.Client
	userAgent string
	groups    map[string]*robotstxt.Group
}

func newRobotsCache(client *http.Client, userAgent string) *robotsCache {
	return &robotsCache{
		client:    client,
		userAgent: userAgent,
		groups:    map[string]*robotstxt.Group{},
	}
}

// allowed reports whether the configured agent may fetch the page.
func (rc *robotsCache) allowed(ctx context.Context, pageURL *url.URL) bool {
	key := pageURL.Scheme + "://" + pageURL.Host
	group, cached := rc.groups[key]
	if !cached {
		group = rc.fetchGroup(ctx, key)
		rc.groups[key] = group
	}
	if group == nil {
		return true
	}

	path := pageURL.Path
	if path == "" {
		path = "/"
	}
	return group.Test(path)
}

func (rc *robotsCache) fetchGroup(ctx context.Context, base string) *robotstxt.Group {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", rc.userAgent)

	resp, err := rc.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsSize))
	if err != nil {
		return nil
	}

	// FromStatusAndBytes already applies the conventional status semantics:
	// 4xx means everything is allowed, 5xx means nothing is.
	robots, err := robotstxt.FromStatusAndBytes(resp.StatusCode, raw)
	if err != nil {
		return nil
	}
	return robots.FindGroup(rc.userAgent)
}
