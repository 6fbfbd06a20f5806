// pkg/pypi/parser.go
package pypi

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/pipdeck/pipdeck/pkg/core"
)

var (
	snippetRe = regexp.MustCompile(`(?s)<a class="package-snippet".*?</a>`)
	nameRe    = regexp.MustCompile(`(?s)<span class="package-snippet__name">(.*?)</span>`)
	versionRe = regexp.MustCompile(`(?s)<span class="package-snippet__version">(.*?)</span>`)
	descRe    = regexp.MustCompile(`(?s)<p class="package-snippet__description">(.*?)</p>`)

	paginationRe = regexp.MustCompile(`(?s)<div class="button-group button-group--pagination">(.*?)</div>`)
	anchorTextRe = regexp.MustCompile(`(?s)<a[^>]*>(.*?)</a>`)
)

// parseSearchPage extracts result snippets and the pagination block from a
// search response body. The second-to-last pagination anchor carries the
// total page count (the last one is the "next" control); this exact rule is
// a compatibility requirement against the live index markup.
func parseSearchPage(body string, page int) (*core.SearchResult, error) {
	snippets := snippetRe.FindAllString(body, -1)
	if len(snippets) == 0 {
		return nil, ErrNoResults
	}

	items := make([]core.SearchItem, 0, len(snippets))
	for _, snippet := range snippets {
		items = append(items, core.SearchItem{
			Name:        extract(nameRe, snippet),
			Version:     extract(versionRe, snippet),
			Description: extract(descRe, snippet),
		})
	}

	totalPages := parseTotalPages(body)
	if totalPages < page {
		totalPages = page
	}

	return &core.SearchResult{Items: items, TotalPages: totalPages}, nil
}

func extract(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(stripTags(m[1])))
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// parseTotalPages reads the total page count from the pagination block,
// defaulting to 1 when the block is missing or too short.
func parseTotalPages(body string) int {
	block := paginationRe.FindStringSubmatch(body)
	if len(block) < 2 {
		return 1
	}

	anchors := anchorTextRe.FindAllStringSubmatch(block[1], -1)
	if len(anchors) < 2 {
		return 1
	}

	text := strings.TrimSpace(stripTags(anchors[len(anchors)-2][1]))
	total, err := strconv.Atoi(text)
	if err != nil || total < 1 {
		return 1
	}
	return total
}
