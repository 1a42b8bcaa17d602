package config

import (
	"os"
	"strconv"

	"github.com/cperrin88/geofetch/pkg/errors"
	"github.com/joho/godotenv"
)

// Environment variables holding descriptor defaults.
const (
	EnvMinZoom           = "MIN_ZOOM"
	EnvMaxZoom           = "MAX_ZOOM"
	EnvDescriptorVersion = "MAKE_DC_VERSION"
)

// Built-in descriptor defaults.
const (
	DefaultMinZoom           = 0
	DefaultMaxZoom           = 7
	DefaultDescriptorVersion = "2.3"
)

// DescriptorDefaults are the values used when a descriptor is requested
// without explicit zoom levels or version.
type DescriptorDefaults struct {
	MinZoom int
	MaxZoom int
	Version string
}

// LoadDescriptorDefaults reads the descriptor defaults from the environment
// after loading every existing file of envFiles. Variables already present in
// the environment take precedence over the files.
func LoadDescriptorDefaults(envFiles ...string) (DescriptorDefaults, error) {
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return DescriptorDefaults{}, errors.Wrapf(errors.ErrConfigParse, "%s: %v", file, err)
		}
	}

	defaults := DescriptorDefaults{
		MinZoom: DefaultMinZoom,
		MaxZoom: DefaultMaxZoom,
		Version: DefaultDescriptorVersion,
	}

	var err error
	if defaults.MinZoom, err = intFromEnv(EnvMinZoom, DefaultMinZoom); err != nil {
		return DescriptorDefaults{}, err
	}
	if defaults.MaxZoom, err = intFromEnv(EnvMaxZoom, DefaultMaxZoom); err != nil {
		return DescriptorDefaults{}, err
	}
	if v := os.Getenv(EnvDescriptorVersion); v != "" {
		defaults.Version = v
	}
	return defaults, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidZoom, "%s=%q", key, raw)
	}
	return n, nil
}
