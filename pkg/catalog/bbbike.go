package catalog

import (
	"context"
	"strings"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/http"
)

// BBBikeService reads the flat city listing of download.bbbike.org.
type BBBikeService struct {
	client   http.Client
	indexURL string
}

// Name returns the service name.
func (s *BBBikeService) Name() string {
	return BBBike
}

// Fetch lists the city directories of the index page.
func (s *BBBikeService) Fetch(ctx context.Context) ([]Entry, error) {
	logger.Info("Downloading catalog", logger.Fields{"service": BBBike, "url": s.indexURL})

	anchors, err := s.client.Anchors(ctx, s.indexURL)
	if err != nil {
		return nil, err
	}
	return ParseBBBikeListing(s.indexURL, anchors), nil
}

// ParseBBBikeListing turns the anchors of the listing at base into entries.
// Only links to direct subdirectories of base are cities.
func ParseBBBikeListing(base string, anchors []http.Anchor) []Entry {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	seen := make(map[string]bool)
	var entries []Entry
	for _, a := range anchors {
		rel, ok := strings.CutPrefix(a.Href, base)
		if !ok || !strings.HasSuffix(rel, "/") {
			continue
		}
		city := strings.TrimSuffix(rel, "/")
		if city == "" || city == ".." || strings.ContainsAny(city, "/?#") || seen[city] {
			continue
		}
		seen[city] = true

		entries = append(entries, Entry{
			ID:   city,
			Name: strings.TrimSpace(strings.TrimSuffix(a.Text, "/")),
			URL:  base + city + "/" + city + ".osm.pbf",
		})
	}

	logger.Debug("Parsed bbbike listing", logger.Fields{"cities": len(entries)})
	return entries
}
