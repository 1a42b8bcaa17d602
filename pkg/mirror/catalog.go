package mirror

import (
	"context"
	"time"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/http"
	"github.com/cperrin88/geofetch/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Scanner probes every site concurrently and enriches each discovered source.
type Scanner struct {
	prober   *Prober
	enricher *Enricher
}

// NewScanner creates a scanner sharing client between probing and enrichment.
func NewScanner(client http.Client) *Scanner {
	return &Scanner{
		prober:   NewProber(client),
		enricher: NewEnricher(client),
	}
}

// Scan populates Site.Sources of every site and returns all sources in site order.
// Failures of one site or record never cancel the others.
func (s *Scanner) Scan(ctx context.Context, sites []*Site) []*Source {
	started := time.Now()
	defer func() { metrics.ProbeDuration.Observe(time.Since(started).Seconds()) }()

	var g errgroup.Group
	for _, site := range sites {
		g.Go(func() error {
			s.scanSite(ctx, site)
			return nil
		})
	}
	_ = g.Wait()

	var all []*Source
	for _, site := range sites {
		all = append(all, site.Sources...)
	}
	return all
}

func (s *Scanner) scanSite(ctx context.Context, site *Site) {
	sources := s.prober.Probe(ctx, site)

	var g errgroup.Group
	for _, src := range sources {
		g.Go(func() error {
			s.enricher.Enrich(ctx, src)
			return nil
		})
	}
	_ = g.Wait()

	site.Sources = sources
	metrics.SourcesDiscovered.WithLabelValues(site.BaseURL).Set(float64(len(sources)))
	for _, src := range sources {
		logger.Debug("Discovered source", logger.Fields{"source": src.String()})
	}
}
