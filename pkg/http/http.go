package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cperrin88/geofetch/pkg/errors"
)

// DefaultUserAgent identifies geofetch to mirror operators.
const DefaultUserAgent = "geofetch/1.0"

// HTTPClient handles HTTP operations for mirrors and catalogs.
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewHTTPClient creates a new HTTP client. A zero timeout leaves requests unbounded.
func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// GetBytes downloads the full body of rawURL.
func (hc *HTTPClient) GetBytes(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := hc.do(ctx, http.MethodGet, rawURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read response body of %s", rawURL)
	}
	return data, nil
}

// GetText downloads rawURL as a string.
func (hc *HTTPClient) GetText(ctx context.Context, rawURL string) (string, error) {
	data, err := hc.GetBytes(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ContentLength issues a HEAD request and returns the advertised body size.
func (hc *HTTPClient) ContentLength(ctx context.Context, rawURL string) (int64, error) {
	resp, err := hc.do(ctx, http.MethodHead, rawURL)
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()

	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("no content length reported for %s", rawURL)
	}
	return resp.ContentLength, nil
}

// Anchors fetches an HTML page and returns its anchor tags with absolute links.
func (hc *HTTPClient) Anchors(ctx context.Context, rawURL string) ([]Anchor, error) {
	resp, err := hc.do(ctx, http.MethodGet, rawURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return ParseAnchors(resp.Body, resp.Request.URL)
}

// ParseAnchors extracts every <a href> of an HTML document, resolving links against base.
func ParseAnchors(r io.Reader, base *url.URL) ([]Anchor, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse listing")
	}

	var anchors []Anchor
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		link := href
		if base != nil {
			resolved, err := base.Parse(href)
			if err != nil {
				return
			}
			link = resolved.String()
		}
		anchors = append(anchors, Anchor{Text: strings.TrimSpace(s.Text()), Href: link})
	})
	return anchors, nil
}

func (hc *HTTPClient) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", hc.userAgent)

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "request to %s failed", rawURL)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, errors.ErrUnexpectedStatusWithURL(rawURL, resp.StatusCode)
	}
	return resp, nil
}
