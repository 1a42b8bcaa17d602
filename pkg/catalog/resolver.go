package catalog

import (
	"context"
	"encoding/json"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/cache"
	"github.com/cperrin88/geofetch/pkg/errors"
)

// document is the normalized form of a catalog kept in the cache.
type document struct {
	Service string  `json:"service"`
	Entries []Entry `json:"entries"`
}

// Resolver loads a service's catalog through a cache and resolves ids in it.
type Resolver struct {
	service Service
	store   cache.Store
}

// NewResolver creates a resolver for service backed by store.
func NewResolver(service Service, store cache.Store) *Resolver {
	return &Resolver{service: service, store: store}
}

// Load returns the flattened catalog. The cached document is used unless
// force is set or it is missing or unreadable, in which case the catalog is
// fetched and the cache overwritten.
func (r *Resolver) Load(ctx context.Context, force bool) ([]Entry, error) {
	name := r.service.Name() + ".json"

	if !force {
		entries, err := r.readCached(name)
		if err == nil {
			return Flatten(entries)
		}
		logger.Debug("Catalog cache unusable, fetching", logger.Fields{"service": r.service.Name(), "reason": err.Error()})
	}

	entries, err := r.service.Fetch(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s catalog", r.service.Name())
	}
	flat, err := Flatten(entries)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(document{Service: r.service.Name(), Entries: entries}, "", "  ")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to encode %s catalog", r.service.Name())
	}
	if err := r.store.Write(name, data); err != nil {
		return nil, err
	}
	return flat, nil
}

// Resolve loads the catalog and looks id up in it.
func (r *Resolver) Resolve(ctx context.Context, id string, force bool) (Entry, error) {
	entries, err := r.Load(ctx, force)
	if err != nil {
		return Entry{}, err
	}
	entry, err := Find(entries, id, r.service.Name())
	if err != nil {
		return Entry{}, err
	}
	logger.Debug("Resolved extract", logger.Fields{"id": id, "full_id": entry.FullID, "url": entry.URL})
	return entry, nil
}

func (r *Resolver) readCached(name string) ([]Entry, error) {
	data, err := r.store.Read(name)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Entries, nil
}
