package catalog

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/cperrin88/geofetch/pkg/archive"
	gferrors "github.com/cperrin88/geofetch/pkg/errors"
	gfhttp "github.com/cperrin88/geofetch/pkg/http"
	mockhttp "github.com/cperrin88/geofetch/pkg/http/mocks"
	"github.com/mholt/archives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const geofabrikIndexJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"id": "australia-oceania", "name": "Australia and Oceania",
      "urls": {"pbf": "https://download.geofabrik.de/australia-oceania-latest.osm.pbf",
               "updates": "https://download.geofabrik.de/australia-oceania-updates"}}},
    {"type": "Feature", "properties": {"id": "new-zealand", "parent": "australia-oceania", "name": "New Zealand",
      "urls": {"pbf": "https://download.geofabrik.de/australia-oceania/new-zealand-latest.osm.pbf",
               "updates": "https://download.geofabrik.de/australia-oceania/new-zealand-updates/"}}},
    {"type": "Feature", "properties": {"id": "no-pbf", "name": "Shape only", "urls": {}}}
  ]
}`

func TestParseGeofabrikIndex(t *testing.T) {
	entries, err := ParseGeofabrikIndex([]byte(geofabrikIndexJSON))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	nz := entries[1]
	assert.Equal(t, "new-zealand", nz.ID)
	assert.Equal(t, "australia-oceania", nz.ParentID)
	assert.Equal(t, "https://download.geofabrik.de/australia-oceania/new-zealand-latest.osm.pbf", nz.URL)
	assert.Equal(t, "https://download.geofabrik.de/australia-oceania/new-zealand-updates/state.txt", nz.StateURL)
}

func TestParseGeofabrikIndex_Invalid(t *testing.T) {
	_, err := ParseGeofabrikIndex([]byte("<html>"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, gferrors.ErrMalformedCatalog))
}

func TestGeofabrikService_FetchCompressed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var buf bytes.Buffer
	w, err := archives.Gz{}.OpenWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(geofabrikIndexJSON))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	client := mockhttp.NewMockClient(ctrl)
	client.EXPECT().GetBytes(gomock.Any(), "https://mirror.example/index-v1.json.gz").Return(buf.Bytes(), nil)

	svc := &GeofabrikService{client: client, indexURL: "https://mirror.example/index-v1.json.gz", archives: archive.NewManager()}
	entries, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestParseBBBikeListing(t *testing.T) {
	base := "https://download.bbbike.org/osm/bbbike/"
	anchors := []gfhttp.Anchor{
		{Text: "Parent Directory", Href: "https://download.bbbike.org/osm/"},
		{Text: "Aachen/", Href: base + "Aachen/"},
		{Text: "Berlin", Href: base + "Berlin/"},
		{Text: "Berlin", Href: base + "Berlin/"},
		{Text: "README.txt", Href: base + "README.txt"},
		{Text: "Name", Href: base + "?C=N;O=D"},
		{Text: "nested", Href: base + "Berlin/extra/"},
		{Text: "elsewhere", Href: "https://other.example/Zurich/"},
	}

	entries := ParseBBBikeListing(base, anchors)

	require.Len(t, entries, 2)
	assert.Equal(t, Entry{
		ID:   "Aachen",
		Name: "Aachen",
		URL:  base + "Aachen/Aachen.osm.pbf",
	}, entries[0])
	assert.Equal(t, "Berlin", entries[1].ID)
}

func TestNewService(t *testing.T) {
	svc, err := NewService(Geofabrik, "", nil)
	require.NoError(t, err)
	assert.Equal(t, Geofabrik, svc.Name())
	assert.Equal(t, DefaultURLs[Geofabrik], svc.(*GeofabrikService).indexURL)

	svc, err = NewService(BBBike, "https://bbbike.mirror/", nil)
	require.NoError(t, err)
	assert.Equal(t, "https://bbbike.mirror/", svc.(*BBBikeService).indexURL)

	_, err = NewService("osmfr", "", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gferrors.ErrUnknownCatalog))
	assert.Contains(t, err.Error(), "bbbike")
}
