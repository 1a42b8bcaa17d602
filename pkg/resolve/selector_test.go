package resolve

import (
	"errors"
	"testing"

	gferrors "github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/mirror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func group(t *testing.T, h, day string, sites ...string) []*mirror.Source {
	t.Helper()
	sources := make([]*mirror.Source, 0, len(sites))
	for _, site := range sites {
		var s *mirror.Source
		if day == "" {
			s = source(site, site+"/"+h, nil, hash(h), nil)
		} else {
			s = source(site, site+"/"+h, date(t, day), hash(h), nil)
		}
		sources = append(sources, s)
	}
	return sources
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name     string
		groups   func(t *testing.T) HashGroups
		opts     SelectOptions
		wantHash string
	}{
		{
			name: "older group with more sites wins over newer single site",
			groups: func(t *testing.T) HashGroups {
				return HashGroups{
					"A": group(t, "A", "2024-01-01", "s1", "s2", "s3"),
					"B": group(t, "B", "2024-01-08", "s4"),
				}
			},
			wantHash: "A",
		},
		{
			name: "newer group that is widespread wins",
			groups: func(t *testing.T) HashGroups {
				return HashGroups{
					"A": group(t, "A", "2024-01-01", "s1"),
					"B": group(t, "B", "2024-01-08", "s2", "s3"),
				}
			},
			wantHash: "B",
		},
		{
			name: "exactly one and a half times is widespread",
			groups: func(t *testing.T) HashGroups {
				return HashGroups{
					"A": group(t, "A", "2024-01-01", "s1", "s2"),
					"B": group(t, "B", "2024-01-08", "s3", "s4", "s5"),
				}
			},
			wantHash: "B",
		},
		{
			name: "force latest takes the newest group",
			groups: func(t *testing.T) HashGroups {
				return HashGroups{
					"A": group(t, "A", "2024-01-01", "s1", "s2", "s3"),
					"B": group(t, "B", "2024-01-08", "s4"),
				}
			},
			opts:     SelectOptions{ForceLatest: true},
			wantHash: "B",
		},
		{
			name: "unknown timestamp ranks highest",
			groups: func(t *testing.T) HashGroups {
				return HashGroups{
					"A": group(t, "A", "2024-01-01", "s1"),
					"B": group(t, "B", "", "s2", "s3"),
				}
			},
			wantHash: "B",
		},
		{
			name: "single group",
			groups: func(t *testing.T) HashGroups {
				return HashGroups{"A": group(t, "A", "2024-01-01", "s1")}
			},
			wantHash: "A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selection, err := Select(tt.groups(t), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHash, selection.Hash)
		})
	}
}

func TestSelect_Empty(t *testing.T) {
	_, err := Select(HashGroups{}, SelectOptions{})
	assert.True(t, errors.Is(err, gferrors.ErrNoConsistentSource))
}

func TestRank(t *testing.T) {
	groups := HashGroups{
		"old":    group(t, "old", "2024-01-01", "s1", "s2"),
		"new":    group(t, "new", "2024-01-08", "s3"),
		"newer":  group(t, "newer", "2024-01-08", "s4", "s5"),
		"latest": group(t, "latest", "", "s6"),
	}

	assert.Equal(t, []string{"latest", "newer", "new", "old"}, Rank(groups))
}

func TestSelect_AvoidedSites(t *testing.T) {
	primary := &mirror.Site{Country: "GB", AvoidByDefault: true}

	withPrimary := func(t *testing.T, n int) HashGroups {
		sources := group(t, "H", "2024-01-01", make([]string, n-1)...)
		p := source("GB", "primary/H", date(t, "2024-01-01"), hash("H"), nil)
		p.Site = primary
		return HashGroups{"H": append([]*mirror.Source{p}, sources...)}
	}

	tests := []struct {
		name        string
		sources     int
		opts        SelectOptions
		wantPrimary bool
		wantCount   int
	}{
		{name: "dropped when more than two sources", sources: 3, wantPrimary: false, wantCount: 2},
		{name: "kept with two sources", sources: 2, wantPrimary: true, wantCount: 2},
		{name: "kept when primary requested", sources: 3, opts: SelectOptions{IncludePrimary: true}, wantPrimary: true, wantCount: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selection, err := Select(withPrimary(t, tt.sources), tt.opts)
			require.NoError(t, err)
			assert.Len(t, selection.Sources, tt.wantCount)
			assert.Equal(t, tt.wantPrimary, containsURL(selection.URLs(), "primary/H"))
		})
	}
}

func TestWithoutAvoided_KeepsAllWhenNothingRemains(t *testing.T) {
	avoided := &mirror.Site{AvoidByDefault: true}
	sources := []*mirror.Source{{URL: "a", Site: avoided}, {URL: "b", Site: avoided}, {URL: "c", Site: avoided}}

	assert.Equal(t, sources, withoutAvoided(sources))
}

func containsURL(urls []string, url string) bool {
	for _, u := range urls {
		if u == url {
			return true
		}
	}
	return false
}

// mirrored builds a group in which every site lists the file both as latest
// and under its date, ordered the way Resolve sorts them.
func mirrored(t *testing.T, h, day string, sites ...*mirror.Site) []*mirror.Source {
	t.Helper()
	var dated, latest []*mirror.Source
	for _, site := range sites {
		d := source(site.Country, site.Country+"/"+day, date(t, day), hash(h), nil)
		d.Site = site
		l := source(site.Country, site.Country+"/latest", nil, hash(h), nil)
		l.Site = site
		dated = append(dated, d)
		latest = append(latest, l)
	}
	return append(dated, latest...)
}

func TestSelect_CountsSitesNotSources(t *testing.T) {
	s1, s2 := &mirror.Site{Country: "S1"}, &mirror.Site{Country: "S2"}
	s3, s4 := &mirror.Site{Country: "S3"}, &mirror.Site{Country: "S4"}

	groups := HashGroups{
		"A": group(t, "A", "2024-01-01", "s3", "s4"),
		"B": mirrored(t, "B", "2024-01-08", s1, s2),
	}
	groups["A"][0].Site, groups["A"][1].Site = s3, s4

	selection, err := Select(groups, SelectOptions{})
	require.NoError(t, err)
	assert.Equal(t, "A", selection.Hash)
	assert.Equal(t, 2, siteCount(groups["B"]))
}

func TestSelect_PrimaryKeptWithTwoSites(t *testing.T) {
	primary := &mirror.Site{Country: "GB", AvoidByDefault: true}
	de := &mirror.Site{Country: "DE"}

	gb := mirrored(t, "H", "2024-01-01", primary)
	deDated := source("DE", "de/0101", date(t, "2024-01-01"), hash("H"), nil)
	deDated.Site = de
	groups := HashGroups{"H": append([]*mirror.Source{gb[0], deDated}, gb[1])}

	selection, err := Select(groups, SelectOptions{})
	require.NoError(t, err)
	assert.Len(t, selection.Sources, 3)
	assert.True(t, containsURL(selection.URLs(), "GB/latest"))
	assert.True(t, containsURL(selection.URLs(), "de/0101"))
}

func TestSelect_LeavesInputUntouched(t *testing.T) {
	groups := HashGroups{
		"A":     group(t, "A", "2024-01-01", "s1"),
		"empty": {},
	}

	selection, err := Select(groups, SelectOptions{})
	require.NoError(t, err)
	assert.Equal(t, "A", selection.Hash)
	assert.Contains(t, groups, "empty")

	_, err = Select(HashGroups{"empty": {}}, SelectOptions{})
	assert.True(t, errors.Is(err, gferrors.ErrNoConsistentSource))
}
