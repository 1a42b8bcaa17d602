package mirror

import (
	"context"
	"strings"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/http"
	"github.com/cperrin88/geofetch/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Enricher fills the hash and file length of a source.
type Enricher struct {
	client http.Client
}

// NewEnricher creates an enricher using client for sidecar and HEAD requests.
func NewEnricher(client http.Client) *Enricher {
	return &Enricher{client: client}
}

// Enrich runs the checksum and content-length lookups of src concurrently.
// Both are best effort: a failed lookup is logged and leaves its field nil.
func (e *Enricher) Enrich(ctx context.Context, src *Source) {
	var g errgroup.Group

	if src.ChecksumURL != nil {
		g.Go(func() error {
			e.fetchChecksum(ctx, src)
			return nil
		})
	}
	g.Go(func() error {
		e.fetchLength(ctx, src)
		return nil
	})

	_ = g.Wait()
}

func (e *Enricher) fetchChecksum(ctx context.Context, src *Source) {
	text, err := e.client.GetText(ctx, *src.ChecksumURL)
	if err != nil {
		metrics.SourceLookups.WithLabelValues("checksum", metrics.ResultFailed).Inc()
		logger.Debug("Checksum lookup failed", logger.Fields{"source": src.URL, "error": err.Error()})
		return
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		metrics.SourceLookups.WithLabelValues("checksum", metrics.ResultFailed).Inc()
		logger.Debug("Empty checksum file", logger.Fields{"source": src.URL})
		return
	}
	hash := strings.ToLower(fields[0])
	src.Hash = &hash
	metrics.SourceLookups.WithLabelValues("checksum", metrics.ResultOK).Inc()
}

func (e *Enricher) fetchLength(ctx context.Context, src *Source) {
	length, err := e.client.ContentLength(ctx, src.URL)
	if err != nil {
		metrics.SourceLookups.WithLabelValues("length", metrics.ResultFailed).Inc()
		logger.Debug("Content length lookup failed", logger.Fields{"source": src.URL, "error": err.Error()})
		return
	}
	src.FileLength = &length
	metrics.SourceLookups.WithLabelValues("length", metrics.ResultOK).Inc()
}
