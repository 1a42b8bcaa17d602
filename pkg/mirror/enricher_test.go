package mirror

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gfhttp "github.com/cperrin88/geofetch/pkg/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrich(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/planet-240101.osm.pbf.md5":
			_, _ = w.Write([]byte("ABCDEF0123  planet-240101.osm.pbf\n"))
		case "/planet-240101.osm.pbf":
			w.Header().Set("Content-Length", "1000")
		case "/empty.md5":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	e := NewEnricher(gfhttp.NewHTTPClient(time.Second, ""))

	t.Run("both lookups succeed", func(t *testing.T) {
		sum := server.URL + "/planet-240101.osm.pbf.md5"
		src := &Source{URL: server.URL + "/planet-240101.osm.pbf", ChecksumURL: &sum}
		e.Enrich(context.Background(), src)

		require.NotNil(t, src.Hash)
		assert.Equal(t, "abcdef0123", *src.Hash)
		require.NotNil(t, src.FileLength)
		assert.Equal(t, int64(1000), *src.FileLength)
	})

	t.Run("no checksum url", func(t *testing.T) {
		src := &Source{URL: server.URL + "/planet-240101.osm.pbf"}
		e.Enrich(context.Background(), src)

		assert.Nil(t, src.Hash)
		require.NotNil(t, src.FileLength)
	})

	t.Run("failures leave fields unset", func(t *testing.T) {
		sum := server.URL + "/missing.md5"
		src := &Source{URL: server.URL + "/missing.pbf", ChecksumURL: &sum}
		e.Enrich(context.Background(), src)

		assert.Nil(t, src.Hash)
		assert.Nil(t, src.FileLength)
	})

	t.Run("empty checksum file", func(t *testing.T) {
		sum := server.URL + "/empty.md5"
		src := &Source{URL: server.URL + "/planet-240101.osm.pbf", ChecksumURL: &sum}
		e.Enrich(context.Background(), src)

		assert.Nil(t, src.Hash)
	})
}
