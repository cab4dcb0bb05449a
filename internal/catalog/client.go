// Package catalog talks to the storefront. It discovers category slugs
// from the root catalog document and pages through a category's listing
// endpoint, handing back raw positional records.
//
// The listing endpoint is undocumented. Its response is not pure JSON:
// a short preamble is followed by a blank line and then the actual JSON
// document, and both the item records and the next pagination token sit
// at fixed positions inside a nested array. Every such position is a
// named constant below so a format drift is a one-line fix.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	listingPath  = "/ajax/item"
	defaultCount = 75

	// Nested-index paths inside the listing payload.
	pathItems     = "0.1.1"
	pathNextToken = "0.1.4"
)

// Fixed request parameters, taken from live endpoint traffic.
const (
	protocolVersion = "20210820"
	featureFlags    = "atf,pii,rtr,rlb,gtc,hcn,svp,wtd,c3d,ncr,ctm,ac,hot,mac,fcf,rma"
	containerType   = "CHROME"
	sortOrder       = "0"
)

// ErrEndOfCategory reports that the storefront has no further pages for
// the requested category. The source signals this with a non-2xx status
// rather than an empty page.
var ErrEndOfCategory = errors.New("end of category")

// Page is one window of a category's result stream. Items are raw
// positional records; ItemFromRecord turns them into typed Items.
type Page struct {
	Items     []gjson.Result
	NextToken string
}

// Client issues requests against one storefront instance.
type Client struct {
	base      string
	hc        *http.Client
	userAgent string
	locale    string
	region    string
}

type ClientOptions struct {
	BaseURL   string
	UserAgent string
	Locale    string
	Region    string
	Timeout   time.Duration
}

func NewClient(opts ClientOptions) (*Client, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		return nil, errors.New("BaseURL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid BaseURL: %w", err)
	}
	to := opts.Timeout
	if to <= 0 {
		to = 25 * time.Second
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = "webstore-scraper/1.0"
	}
	locale := strings.TrimSpace(opts.Locale)
	if locale == "" {
		locale = "en"
	}
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		region = "US"
	}
	return &Client{
		base:      strings.TrimRight(base, "/"),
		hc:        &http.Client{Timeout: to},
		userAgent: ua,
		locale:    locale,
		region:    region,
	}, nil
}

// FetchPage requests one listing window for a category. pageSize <= 0
// falls back to the server default of 75. An empty token means the
// first page of the category; it is omitted from the request entirely.
func (c *Client) FetchPage(ctx context.Context, category string, pageSize int, token string) (*Page, error) {
	if pageSize <= 0 {
		pageSize = defaultCount
	}

	form := url.Values{}
	form.Set("hl", c.locale)
	form.Set("gl", c.region)
	form.Set("pv", protocolVersion)
	form.Set("mce", featureFlags)
	form.Set("container", containerType)
	form.Set("sortBy", sortOrder)
	form.Set("category", category)
	form.Set("count", strconv.Itoa(pageSize))
	if token != "" {
		form.Set("token", token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+listingPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("listing body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The storefront ends a category's stream with an HTTP error,
		// not with an empty page.
		return nil, fmt.Errorf("%w (status %d)", ErrEndOfCategory, resp.StatusCode)
	}
	return parseListing(body)
}

// parseListing strips the preamble and pulls the item records and the
// next pagination token out of the nested array.
func parseListing(body []byte) (*Page, error) {
	doc, ok := splitPayload(string(body))
	if !ok {
		return nil, errors.New("listing payload: missing preamble boundary")
	}
	if !gjson.Valid(doc) {
		return nil, errors.New("listing payload: invalid JSON after boundary")
	}
	root := gjson.Parse(doc)
	items := root.Get(pathItems)
	if !items.IsArray() {
		return nil, fmt.Errorf("listing payload: no item block at [%s]", pathItems)
	}
	return &Page{
		Items:     items.Array(),
		NextToken: root.Get(pathNextToken).String(),
	}, nil
}

// splitPayload returns the segment after the LAST double-newline
// boundary. The serialized JSON itself is a single line, so the last
// boundary always separates preamble from document.
func splitPayload(body string) (string, bool) {
	i := strings.LastIndex(body, "\n\n")
	if i < 0 {
		return "", false
	}
	return body[i+2:], true
}
