//go:generate mockgen -destination=mocks/http.go . Client
package http

import (
	"context"
)

// Client defines the HTTP operations used against mirrors and catalog services.
type Client interface {
	// GetBytes downloads the full body of rawURL.
	GetBytes(ctx context.Context, rawURL string) ([]byte, error)

	// GetText downloads rawURL as a string.
	GetText(ctx context.Context, rawURL string) (string, error)

	// ContentLength issues a HEAD request and returns the advertised body size.
	ContentLength(ctx context.Context, rawURL string) (int64, error)

	// Anchors fetches an HTML page and returns its anchor tags with absolute links.
	Anchors(ctx context.Context, rawURL string) ([]Anchor, error)
}

// Anchor is a single (text, link) pair of a directory listing page.
type Anchor struct {
	Text string
	Href string
}
