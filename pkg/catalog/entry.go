// Package catalog resolves human friendly region ids against the extract
// catalogs of regional download services.
package catalog

import (
	"sort"
	"strings"

	"github.com/cperrin88/geofetch/pkg/errors"
)

// maxParentHops bounds the parent walk of a single entry.
const maxParentHops = 10

// Entry is one downloadable extract of a catalog service.
type Entry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent,omitempty"`
	URL      string `json:"url"`
	StateURL string `json:"state_url,omitempty"`

	// FullID and FullName are derived from the parent chain by Flatten.
	FullID   string `json:"-"`
	FullName string `json:"-"`
}

// Flatten computes FullID and FullName of every entry by walking its parent
// chain to the root, and returns the entries sorted by FullID. A duplicate
// id, an unknown parent, a revisited id or a chain longer than maxParentHops
// is reported as ErrMalformedCatalog.
func Flatten(entries []Entry) ([]Entry, error) {
	byID := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if _, dup := byID[e.ID]; dup {
			return nil, errors.Wrapf(errors.ErrMalformedCatalog, "duplicate id %q", e.ID)
		}
		byID[e.ID] = e
	}

	flat := make([]Entry, 0, len(entries))
	for _, e := range entries {
		ids := []string{e.ID}
		names := []string{e.Name}
		visited := map[string]bool{e.ID: true}

		for parent, hops := e.ParentID, 0; parent != ""; hops++ {
			if hops == maxParentHops {
				return nil, errors.Wrapf(errors.ErrMalformedCatalog, "parent chain of %q exceeds %d hops", e.ID, maxParentHops)
			}
			if visited[parent] {
				return nil, errors.Wrapf(errors.ErrMalformedCatalog, "parent chain of %q loops at %q", e.ID, parent)
			}
			p, ok := byID[parent]
			if !ok {
				return nil, errors.Wrapf(errors.ErrMalformedCatalog, "%q has unknown parent %q", e.ID, parent)
			}
			visited[parent] = true
			ids = append([]string{p.ID}, ids...)
			names = append([]string{p.Name}, names...)
			parent = p.ParentID
		}

		e.FullID = strings.Join(ids, "/")
		e.FullName = strings.Join(names, " / ")
		flat = append(flat, e)
	}

	sort.Slice(flat, func(i, j int) bool { return flat[i].FullID < flat[j].FullID })
	return flat, nil
}

// Find looks id up in flattened entries. An exact FullID match wins;
// otherwise id is compared case-insensitively with every slash separated
// suffix of each FullID and must match exactly one entry.
func Find(entries []Entry, id, service string) (Entry, error) {
	for _, e := range entries {
		if e.FullID == id {
			return e, nil
		}
	}

	query := strings.ToLower(strings.Trim(id, "/"))
	var matches []Entry
	for _, e := range entries {
		if hasSuffixPath(strings.ToLower(e.FullID), query) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return Entry{}, errors.ErrExtractNotFoundWithID(id, service)
	case 1:
		return matches[0], nil
	}

	candidates := make([]string, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, m.FullID)
	}
	return Entry{}, errors.ErrAmbiguousExtractWithCandidates(id, candidates)
}

// hasSuffixPath reports whether query equals fullID or one of its trailing
// path segments joined by slashes.
func hasSuffixPath(fullID, query string) bool {
	if query == "" {
		return false
	}
	return fullID == query || strings.HasSuffix(fullID, "/"+query)
}
