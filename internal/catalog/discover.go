package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Category links look like href="/category/ext/22-games". The free/
// variants are rollups over the same listings and are skipped.
var categoryHref = regexp.MustCompile(`/category/(ext/[^"'?&#]+)`)

// DiscoverCategories fetches the root catalog document and returns the
// category slugs it links to, deduplicated, in document order. A fetch
// failure here is fatal to the run; there is nothing to scrape without
// the category list.
func (c *Client) DiscoverCategories(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("root catalog: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("root catalog: status %d", resp.StatusCode)
	}
	return ExtractCategories(resp.Body)
}

// ExtractCategories scans a root catalog document for category links.
// Kept pure (bytes in, slugs out) so it can be exercised against
// captured documents.
func ExtractCategories(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("root catalog parse: %w", err)
	}

	var out []string
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		m := categoryHref.FindStringSubmatch(href)
		if m == nil {
			return
		}
		slug := m[1]
		if excludedCategory(slug) {
			return
		}
		if _, ok := seen[slug]; ok {
			return
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	})
	return out, nil
}

// excludedCategory reports whether a slug is the free-items rollup
// variant rather than a real category.
func excludedCategory(slug string) bool {
	return strings.HasPrefix(strings.TrimPrefix(slug, "ext/"), "free")
}
