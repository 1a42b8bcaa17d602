// Package metrics holds the Prometheus collectors of a geofetch run.
// A CLI process has no scrape endpoint, so the registry is written in the
// node_exporter textfile format when a metrics file is configured.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Registry is the registry every geofetch collector is registered on.
	Registry = prometheus.NewRegistry()

	SiteProbes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geofetch_site_probes_total",
			Help: "Mirror listing probes, labeled by site and result.",
		},
		[]string{"site", "result"},
	)
	SourceLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geofetch_source_lookups_total",
			Help: "Checksum and content-length lookups, labeled by lookup kind and result.",
		},
		[]string{"lookup", "result"},
	)
	SourcesDiscovered = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "geofetch_sources_discovered",
			Help: "Number of source records kept per site.",
		},
		[]string{"site"},
	)
	ProbeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "geofetch_probe_duration_seconds",
			Help:    "Duration of the full mirror probe and enrichment run.",
			Buckets: prometheus.DefBuckets,
		},
	)
	UnresolvedSources = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "geofetch_unresolved_sources_total",
			Help: "Source records dropped because no hash could be determined.",
		},
	)
)

// Result label values.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

func init() {
	Registry.MustRegister(SiteProbes)
	Registry.MustRegister(SourceLookups)
	Registry.MustRegister(SourcesDiscovered)
	Registry.MustRegister(ProbeDuration)
	Registry.MustRegister(UnresolvedSources)
}

// WriteTextfile writes the current state of Registry to path.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
