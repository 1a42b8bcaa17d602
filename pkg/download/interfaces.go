//go:generate mockgen -destination=./mocks/download.go . Manager
package download

import (
	"context"
	"net/url"
)

// Manager downloads small side files such as replication state documents.
// Large extracts are handed to the external transfer tool instead.
type Manager interface {
	// FetchAll downloads all items concurrently and returns a map from
	// Item.ID to the absolute local file path.
	FetchAll(ctx context.Context, items []Item, opts Options) (map[string]string, error)

	// Fetch downloads a single item and returns the absolute local file path.
	Fetch(ctx context.Context, item Item) (string, error)
}

// Item represents one remote resource to download.
type Item struct {
	ID       string   // stable identifier, unique within a batch
	URL      *url.URL // source URL to download
	Dest     string   // destination file path, made absolute before writing
	Checksum string   // optional hex-encoded SHA-256 checksum; if provided, will be verified
}

// Options control the behavior of the download manager.
type Options struct {
	Concurrency int // number of parallel downloads; if <=0, a sane default is used
}
