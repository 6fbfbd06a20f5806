// pkg/pypi/manager.go
package pypi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pipdeck/pipdeck/pkg/core"
)

// LatestVersion fetches the latest released version of a package.
// Best-effort: any failure (network, timeout, parse) yields ok=false, never
// an error. Budget: 5 seconds on top of caller cancellation.
func (c *Client) LatestVersion(ctx context.Context, name string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, latestVersionTimeout)
	defer cancel()

	var doc packageDocument
	if err := c.getJSON(ctx, "/pypi/"+url.PathEscape(name)+"/json", &doc); err != nil {
		return "", false
	}
	if doc.Info.Version == "" {
		return "", false
	}
	return doc.Info.Version, true
}

// Versions fetches all released versions of a package, newest first.
// Releases with no distributable files are dropped. Best-effort: any
// failure yields nil. Budget: 10 seconds on top of caller cancellation.
func (c *Client) Versions(ctx context.Context, name string) []string {
	ctx, cancel := context.WithTimeout(ctx, versionListTimeout)
	defer cancel()

	var doc packageDocument
	if err := c.getJSON(ctx, "/pypi/"+url.PathEscape(name)+"/json", &doc); err != nil {
		return nil
	}

	versions := make([]string, 0, len(doc.Releases))
	for version, files := range doc.Releases {
		if len(files) == 0 {
			continue
		}
		versions = append(versions, version)
	}

	SortVersions(versions)
	return versions
}

// Search fetches one page of full-text search results. An empty keyword is
// replaced by a default classifier filter so a result block always exists.
// A response without a result block yields ErrNoResults; a cancelled ctx
// yields ctx.Err() for the caller to treat as a silent outcome.
func (c *Client) Search(ctx context.Context, keyword string, page int) (*core.SearchResult, error) {
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("q", keyword)
	query.Set("page", strconv.Itoa(page))
	if keyword == "" {
		query.Set("c", defaultClassifier)
	}

	body, err := c.getBody(ctx, "/search/?"+query.Encode())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	return parseSearchPage(body, page)
}
