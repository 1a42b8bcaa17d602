// Package metadata derives a deployment descriptor from a downloaded extract.
package metadata

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/fsutil"
	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

// ServiceName is the compose service that consumes the descriptor.
const ServiceName = "generate-vectortiles"

// Descriptor is a docker-compose override that configures tile generation
// for one extract.
type Descriptor struct {
	Version  string             `yaml:"version"`
	Services map[string]Service `yaml:"services"`
}

// Service holds the environment of one compose service.
type Service struct {
	Environment Environment `yaml:"environment"`
}

// Environment is the set of values derived from the extract.
type Environment struct {
	BBox         string `yaml:"BBOX"`
	MaxTimestamp string `yaml:"OSM_MAX_TIMESTAMP"`
	AreaName     string `yaml:"OSM_AREA_NAME"`
	MinZoom      int    `yaml:"MIN_ZOOM"`
	MaxZoom      int    `yaml:"MAX_ZOOM"`
}

// NewDescriptor creates a descriptor for env after validating descriptorVersion.
func NewDescriptor(descriptorVersion string, env Environment) (*Descriptor, error) {
	if _, err := version.NewVersion(descriptorVersion); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidVersion, "%q: %v", descriptorVersion, err)
	}
	if env.MinZoom < 0 || env.MaxZoom < env.MinZoom {
		return nil, errors.Wrapf(errors.ErrInvalidZoom, "min %d, max %d", env.MinZoom, env.MaxZoom)
	}
	return &Descriptor{
		Version:  descriptorVersion,
		Services: map[string]Service{ServiceName: {Environment: env}},
	}, nil
}

// Environment returns the tile generation settings.
func (d *Descriptor) Environment() Environment {
	return d.Services[ServiceName].Environment
}

// Marshal encodes the descriptor as YAML.
func (d *Descriptor) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode descriptor")
	}
	return data, nil
}

// WriteFile writes the descriptor to path, replacing any existing file.
func (d *Descriptor) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := fsutil.EnsureFileDir(path); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write descriptor %s", path)
	}
	return nil
}

// AreaNameFromFile derives an area name from an extract file name.
func AreaNameFromFile(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".osm.pbf")
	return strings.TrimSuffix(name, ".pbf")
}
