package mirror

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cperrin88/geofetch/internal/logger"
	gfhttp "github.com/cperrin88/geofetch/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anchors(base string, names ...string) []gfhttp.Anchor {
	out := make([]gfhttp.Anchor, 0, len(names))
	for _, n := range names {
		out = append(out, gfhttp.Anchor{Text: n, Href: base + n})
	}
	return out
}

func TestParseListing(t *testing.T) {
	site := &Site{Country: "DE", BaseURL: "https://m.example/pbf/"}

	tests := []struct {
		name          string
		entries       []string
		expectNames   []string
		expectSumURLs map[string]string
	}{
		{
			name: "latest first then two newest dated",
			entries: []string{
				"../",
				"planet-231225.osm.pbf", "planet-231225.osm.pbf.md5",
				"planet-240101.osm.pbf", "planet-240101.osm.pbf.md5",
				"planet-240108.osm.pbf",
				"planet-latest.osm.pbf", "planet-latest.osm.pbf.md5",
				"changesets-240108.osm.bz2",
			},
			expectNames: []string{"planet-latest.osm.pbf", "planet-240108.osm.pbf", "planet-240101.osm.pbf"},
			expectSumURLs: map[string]string{
				"planet-latest.osm.pbf": "https://m.example/pbf/planet-latest.osm.pbf.md5",
				"planet-240101.osm.pbf": "https://m.example/pbf/planet-240101.osm.pbf.md5",
			},
		},
		{
			name:        "checksum before data file",
			entries:     []string{"planet-240101.osm.pbf.md5", "planet-240101.osm.pbf"},
			expectNames: []string{"planet-240101.osm.pbf"},
			expectSumURLs: map[string]string{
				"planet-240101.osm.pbf": "https://m.example/pbf/planet-240101.osm.pbf.md5",
			},
		},
		{
			name:        "orphan checksum is dropped",
			entries:     []string{"planet-240101.osm.pbf.md5", "planet-latest.osm.pbf"},
			expectNames: []string{"planet-latest.osm.pbf"},
		},
		{
			name:        "invalid date is skipped",
			entries:     []string{"planet-241399.osm.pbf"},
			expectNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources := ParseListing(site, anchors(site.BaseURL, tt.entries...))

			names := make([]string, 0, len(sources))
			for _, s := range sources {
				names = append(names, s.Name)
				assert.Same(t, site, s.Site)
				if want, ok := tt.expectSumURLs[s.Name]; ok {
					require.NotNil(t, s.ChecksumURL)
					assert.Equal(t, want, *s.ChecksumURL)
				} else {
					assert.Nil(t, s.ChecksumURL)
				}
			}
			assert.Equal(t, tt.expectNames, names)
		})
	}
}

func TestParseListing_Timestamps(t *testing.T) {
	site := &Site{Country: "US"}
	sources := ParseListing(site, anchors("https://x/", "planet-latest.osm.pbf", "planet-240101.osm.pbf"))
	require.Len(t, sources, 2)

	assert.Nil(t, sources[0].Timestamp)
	require.NotNil(t, sources[1].Timestamp)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *sources[1].Timestamp)
}

// siteFailureLogs lists an unavailable site with the logger at level and returns
// what was logged.
func siteFailureLogs(t *testing.T, level string) (string, []*Source) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var buf bytes.Buffer
	logger.SetTestOutput(&buf)
	logger.InitLogger(level, logger.FormatText)
	t.Cleanup(func() {
		logger.UnsetTestOutput()
		logger.InitLogger("info", logger.FormatAuto)
	})

	p := NewProber(gfhttp.NewHTTPClient(time.Second, ""))
	sources := p.Probe(context.Background(), &Site{Country: "NL", BaseURL: server.URL + "/pbf/"})
	return buf.String(), sources
}

func TestProbe_SiteFailure(t *testing.T) {
	out, sources := siteFailureLogs(t, "info")
	assert.Empty(t, sources)
	assert.NotContains(t, out, "Mirror listing unavailable")
}

func TestProbe_SiteFailureVerbose(t *testing.T) {
	out, sources := siteFailureLogs(t, "debug")
	assert.Empty(t, sources)
	assert.Contains(t, out, "Mirror listing unavailable")
	assert.Contains(t, out, "site=NL")
}
