package catalog

import (
	"context"
	"sort"

	"github.com/cperrin88/geofetch/pkg/archive"
	"github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/http"
)

// Service fetches the raw, unflattened entries of one catalog service.
type Service interface {
	Name() string
	Fetch(ctx context.Context) ([]Entry, error)
}

// Known catalog services and their default index locations.
const (
	Geofabrik = "geofabrik"
	BBBike    = "bbbike"
)

// DefaultURLs maps each known service to its index document.
var DefaultURLs = map[string]string{
	Geofabrik: "https://download.geofabrik.de/index-v1.json",
	BBBike:    "https://download.bbbike.org/osm/bbbike/",
}

// ServiceNames returns the names of the known services in sorted order.
func ServiceNames() []string {
	names := make([]string, 0, len(DefaultURLs))
	for name := range DefaultURLs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewService creates the named service. An empty indexURL selects the
// service's default index location.
func NewService(name, indexURL string, client http.Client) (Service, error) {
	if indexURL == "" {
		indexURL = DefaultURLs[name]
	}
	switch name {
	case Geofabrik:
		return &GeofabrikService{client: client, indexURL: indexURL, archives: archive.NewManager()}, nil
	case BBBike:
		return &BBBikeService{client: client, indexURL: indexURL}, nil
	}
	return nil, errors.ErrUnknownCatalogWithName(name, ServiceNames())
}
