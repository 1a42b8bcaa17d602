package catalog

import (
	"context"
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/archive"
	"github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/http"
)

// GeofabrikService reads the GeoJSON extract index of download.geofabrik.de.
type GeofabrikService struct {
	client   http.Client
	indexURL string
	archives *archive.Manager
}

type geofabrikIndex struct {
	Features []struct {
		Properties struct {
			ID     string `json:"id"`
			Parent string `json:"parent"`
			Name   string `json:"name"`
			URLs   struct {
				PBF     string `json:"pbf"`
				Updates string `json:"updates"`
			} `json:"urls"`
		} `json:"properties"`
	} `json:"features"`
}

// Name returns the service name.
func (s *GeofabrikService) Name() string {
	return Geofabrik
}

// Fetch downloads and parses the index. Features without a pbf link are skipped.
func (s *GeofabrikService) Fetch(ctx context.Context) ([]Entry, error) {
	logger.Info("Downloading catalog", logger.Fields{"service": Geofabrik, "url": s.indexURL})

	body, err := s.client.GetBytes(ctx, s.indexURL)
	if err != nil {
		return nil, err
	}
	body, err = s.archives.Decompress(ctx, documentName(s.indexURL), body)
	if err != nil {
		return nil, err
	}
	return ParseGeofabrikIndex(body)
}

// ParseGeofabrikIndex converts a geofabrik GeoJSON index into entries.
func ParseGeofabrikIndex(data []byte) ([]Entry, error) {
	var index geofabrikIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, errors.Wrapf(errors.ErrMalformedCatalog, "geofabrik index: %v", err)
	}

	entries := make([]Entry, 0, len(index.Features))
	for _, f := range index.Features {
		p := f.Properties
		if p.ID == "" || p.URLs.PBF == "" {
			logger.Debug("Skipping catalog feature without id or pbf link", logger.Fields{"id": p.ID})
			continue
		}
		e := Entry{
			ID:       p.ID,
			Name:     p.Name,
			ParentID: p.Parent,
			URL:      p.URLs.PBF,
		}
		if p.URLs.Updates != "" {
			e.StateURL = strings.TrimSuffix(p.URLs.Updates, "/") + "/state.txt"
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// documentName returns the last path element of rawURL for format detection.
func documentName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return path.Base(u.Path)
}
