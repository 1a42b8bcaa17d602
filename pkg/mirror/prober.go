package mirror

import (
	"context"
	"regexp"
	"sort"
	"time"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/http"
	"github.com/cperrin88/geofetch/pkg/metrics"
)

// latestKey marks the rolling "latest" entry of a listing.
const latestKey = "latest"

// maxDatedSources is the number of dated records kept per site.
const maxDatedSources = 2

// listingDateLayout is the yymmdd date embedded in planet file names.
const listingDateLayout = "060102"

var planetEntry = regexp.MustCompile(`^planet-(\d{6}|latest)\.osm\.pbf(\.md5)?$`)

// Prober reads the directory listing of a site.
type Prober struct {
	client http.Client
}

// NewProber creates a prober using client for listing requests.
func NewProber(client http.Client) *Prober {
	return &Prober{client: client}
}

// Probe fetches the listing of site and returns the discovered sources.
// A failing site is logged and yields no sources.
func (p *Prober) Probe(ctx context.Context, site *Site) []*Source {
	anchors, err := p.client.Anchors(ctx, site.BaseURL)
	if err != nil {
		metrics.SiteProbes.WithLabelValues(site.BaseURL, metrics.ResultFailed).Inc()
		logger.Debug("Mirror listing unavailable", logger.Fields{"site": site.Country, "url": site.BaseURL, "error": err.Error()})
		return nil
	}
	metrics.SiteProbes.WithLabelValues(site.BaseURL, metrics.ResultOK).Inc()
	return ParseListing(site, anchors)
}

// ParseListing turns listing anchors into sources of site. Checksum entries
// attach to the record of the same date. Only the newest two dated records and
// the latest record are kept, latest first.
func ParseListing(site *Site, anchors []http.Anchor) []*Source {
	byKey := make(map[string]*Source)

	for _, a := range anchors {
		m := planetEntry.FindStringSubmatch(a.Text)
		if m == nil {
			logger.Debug("Skipping listing entry", logger.Fields{"site": site.Country, "entry": a.Text})
			continue
		}
		key, isChecksum := m[1], m[2] != ""

		src, ok := byKey[key]
		if !ok {
			src = &Source{Site: site}
			if key != latestKey {
				ts, err := time.Parse(listingDateLayout, key)
				if err != nil {
					logger.Debug("Skipping undated listing entry", logger.Fields{"site": site.Country, "entry": a.Text})
					continue
				}
				src.Timestamp = &ts
			}
			byKey[key] = src
		}

		if isChecksum {
			href := a.Href
			src.ChecksumURL = &href
		} else {
			src.Name = a.Text
			src.URL = a.Href
		}
	}

	var latest *Source
	dated := make([]*Source, 0, len(byKey))
	for key, src := range byKey {
		if src.URL == "" {
			// a checksum file without its data file
			continue
		}
		if key == latestKey {
			latest = src
			continue
		}
		dated = append(dated, src)
	}
	sort.Slice(dated, func(i, j int) bool {
		return dated[i].Timestamp.After(*dated[j].Timestamp)
	})
	if len(dated) > maxDatedSources {
		dated = dated[:maxDatedSources]
	}

	sources := make([]*Source, 0, len(dated)+1)
	if latest != nil {
		sources = append(sources, latest)
	}
	return append(sources, dated...)
}
