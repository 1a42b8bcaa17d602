//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cperrin88/geofetch/internal/logger"
	gferrors "github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const testIndex = `{"type": "FeatureCollection", "features": [
  {"type": "Feature", "properties": {"id": "australia-oceania", "name": "Australia and Oceania",
    "urls": {"pbf": "https://dl.example.org/australia-oceania-latest.osm.pbf"}}},
  {"type": "Feature", "properties": {"id": "new-zealand", "parent": "australia-oceania", "name": "New Zealand",
    "urls": {"pbf": "https://dl.example.org/australia-oceania/new-zealand-latest.osm.pbf",
             "updates": "https://dl.example.org/australia-oceania/new-zealand-updates"}}}
]}`

const fakeStatsTool = `#!/bin/sh
cat <<STATS
timestamp min: 2007-03-01T10:00:00Z
timestamp max: 2024-01-01T00:00:00Z
lon min: 166.0
lon max: 179.0
lat min: -47.5
lat max: -34.0
nodes: 42
STATS
`

// setupEnv writes a config that points the geofabrik catalog at a local
// server and uses a fake statistics tool. It returns the config path.
func setupEnv(t *testing.T) string {
	t.Helper()
	logger.SetTestOutput(io.Discard)
	t.Cleanup(logger.UnsetTestOutput)

	for _, key := range []string{"MIN_ZOOM", "MAX_ZOOM", "MAKE_DC_VERSION"} {
		t.Setenv(key, "")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testIndex))
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	tool := filepath.Join(dir, "osmconvert")
	require.NoError(t, os.WriteFile(tool, []byte(fakeStatsTool), 0o755))

	cfgPath := filepath.Join(dir, "config.yaml")
	content := "catalogs:\n" +
		"  geofabrik: " + srv.URL + "/index-v1.json\n" +
		"settings:\n" +
		"  cache_dir: " + filepath.Join(dir, "cache") + "\n" +
		"  http_timeout: 5s\n" +
		"  stats_tool: " + tool + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	return cfgPath
}

// runCLI runs the program with args and returns what it printed to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := run(context.Background(), args)

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String(), runErr
}

func readDescriptor(t *testing.T, path string) metadata.Environment {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var desc metadata.Descriptor
	require.NoError(t, yaml.Unmarshal(data, &desc))
	return desc.Environment()
}

func TestListCommand(t *testing.T) {
	cfgPath := setupEnv(t)

	out, err := runCLI(t, "--config", cfgPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "australia-oceania/new-zealand")
	assert.Contains(t, out, "Australia and Oceania / New Zealand")

	out, err = runCLI(t, "--config", cfgPath, "list", "--tree")
	require.NoError(t, err)
	assert.Contains(t, out, "geofabrik")
	assert.Contains(t, out, "new-zealand (New Zealand)")
}

func TestExtractCommand_DryRun(t *testing.T) {
	cfgPath := setupEnv(t)

	out, err := runCLI(t, "--config", cfgPath, "extract", "NEW-ZEALAND", "--dry-run", "--make-dc", "dc.yml", "--", "-d", "/data")
	require.NoError(t, err)
	assert.Contains(t, out, "resolving")
	assert.Contains(t, out, "done: dry-run (new-zealand)")
}

func TestExtractCommand_NotFound(t *testing.T) {
	cfgPath := setupEnv(t)

	_, err := runCLI(t, "--config", cfgPath, "extract", "atlantis", "--dry-run")
	require.Error(t, err)
	assert.ErrorIs(t, err, gferrors.ErrExtractNotFound)
	assert.Contains(t, err.Error(), "--force")
}

func TestMakeDCCommand(t *testing.T) {
	cfgPath := setupEnv(t)
	output := filepath.Join(t.TempDir(), "docker-compose-config.yml")

	_, err := runCLI(t, "--config", cfgPath, "make-dc", "/data/new-zealand-latest.osm.pbf", "-o", output, "--maxzoom", "14")
	require.NoError(t, err)

	assert.Equal(t, metadata.Environment{
		BBox:         "166.0,-47.5,179.0,-34.0",
		MaxTimestamp: "2024-01-01T00:00:00Z",
		AreaName:     "new-zealand-latest",
		MinZoom:      0,
		MaxZoom:      14,
	}, readDescriptor(t, output))
}

func TestCallbackMode(t *testing.T) {
	cfgPath := setupEnv(t)
	output := filepath.Join(t.TempDir(), "dc.yml")

	t.Setenv("GEOFETCH_DESCRIPTOR_FILE", output)
	t.Setenv("GEOFETCH_AREA_NAME", "nz")
	t.Setenv("GEOFETCH_MIN_ZOOM", "0")
	t.Setenv("GEOFETCH_MAX_ZOOM", "7")
	t.Setenv("GEOFETCH_DESCRIPTOR_VERSION", "2.3")
	t.Setenv("GEOFETCH_CONFIG", cfgPath)

	_, err := runCLI(t, "2089b05ecca3d829", "1", "/data/new-zealand-latest.osm.pbf")
	require.NoError(t, err)

	env := readDescriptor(t, output)
	assert.Equal(t, "nz", env.AreaName)
	assert.Equal(t, 7, env.MaxZoom)
}

func TestConfigCommands(t *testing.T) {
	logger.SetTestOutput(io.Discard)
	t.Cleanup(logger.UnsetTestOutput)
	cfgPath := filepath.Join(t.TempDir(), "geofetch", "config.yaml")

	_, err := runCLI(t, "--config", cfgPath, "config", "init")
	require.NoError(t, err)

	_, err = runCLI(t, "--config", cfgPath, "config", "init")
	assert.ErrorIs(t, err, gferrors.ErrConfigFileExists)

	out, err := runCLI(t, "--config", cfgPath, "config", "get", "http_timeout")
	require.NoError(t, err)
	assert.Equal(t, "30s\n", out)

	_, err = runCLI(t, "--config", cfgPath, "config", "set", "log_level", "debug")
	require.NoError(t, err)

	out, err = runCLI(t, "--config", cfgPath, "config", "get", "log_level")
	require.NoError(t, err)
	assert.Equal(t, "debug\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "geofetch version")
}
