package orchestrator

import (
	"context"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/catalog"
	"github.com/cperrin88/geofetch/pkg/metadata"
	"github.com/cperrin88/geofetch/pkg/mirror"
	"github.com/cperrin88/geofetch/pkg/resolve"
)

// PlanetResolver plans a planet download from the mirrors that agree on
// the most recent widely available file.
type PlanetResolver struct {
	Scanner *mirror.Scanner
	Sites   []*mirror.Site
	Select  resolve.SelectOptions
}

// Resolve probes all sites and selects the file to download.
func (r *PlanetResolver) Resolve(ctx context.Context) (*Plan, error) {
	sources := r.Scanner.Scan(ctx, r.Sites)
	groups, err := resolve.Resolve(sources)
	if err != nil {
		return nil, err
	}
	selection, err := resolve.Select(groups, r.Select)
	if err != nil {
		return nil, err
	}

	logger.Info("Selected planet file", logger.Fields{
		"hash":    selection.Hash,
		"date":    mirror.FormatTimestamp(selection.Sources[0].Timestamp),
		"mirrors": len(selection.Sources),
	})
	return &Plan{
		Name:     metadata.AreaNameFromFile(selection.Sources[0].Name),
		URLs:     selection.URLs(),
		Hash:     selection.Hash,
		StateURL: mirror.PrimaryStateURL,
	}, nil
}

// ExtractResolver plans the download of one catalog extract.
type ExtractResolver struct {
	Catalog *catalog.Resolver
	ID      string
	Force   bool
}

// Resolve looks the extract up in its catalog.
func (r *ExtractResolver) Resolve(ctx context.Context) (*Plan, error) {
	entry, err := r.Catalog.Resolve(ctx, r.ID, r.Force)
	if err != nil {
		return nil, err
	}
	logger.Info("Resolved extract", logger.Fields{"id": r.ID, "full_id": entry.FullID, "name": entry.FullName})
	return &Plan{
		Name:     entry.ID,
		URLs:     []string{entry.URL},
		StateURL: entry.StateURL,
	}, nil
}

// URLResolver plans the download of a single URL.
type URLResolver struct {
	URL string
}

// Resolve returns the URL as is.
func (r *URLResolver) Resolve(_ context.Context) (*Plan, error) {
	return &Plan{URLs: []string{r.URL}}, nil
}
