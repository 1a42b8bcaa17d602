// Package config provides configuration management for geofetch.
// It handles loading, validating, and saving the YAML settings file, the
// planet mirror list, and the catalog service endpoints. A missing file
// yields the defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cperrin88/geofetch/pkg/catalog"
	"github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/fsutil"
	"github.com/cperrin88/geofetch/pkg/http"
	"github.com/cperrin88/geofetch/pkg/metadata"
	"github.com/cperrin88/geofetch/pkg/mirror"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Mirrors replaces the built-in planet mirror list when not empty.
	Mirrors []*MirrorConfig `yaml:"mirrors,omitempty"`

	// Catalogs overrides the index URL of catalog services by name.
	Catalogs map[string]string `yaml:"catalogs,omitempty"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// MirrorConfig represents a single planet mirror.
type MirrorConfig struct {
	Country        string `yaml:"country"`
	URL            string `yaml:"url"`
	AvoidByDefault bool   `yaml:"avoid_by_default,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Cache settings
	CacheDir string `yaml:"cache_dir,omitempty"`

	// Network settings
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	MaxConcurrent int           `yaml:"max_concurrent"`
	UserAgent     string        `yaml:"user_agent"`

	// External tools
	TransferTool string `yaml:"transfer_tool"`
	StatsTool    string `yaml:"stats_tool"`

	// Scripts
	HooksDir           string `yaml:"hooks_dir,omitempty"`
	PostDownloadScript string `yaml:"post_download_script,omitempty"`

	// Output settings
	LogLevel    string `yaml:"log_level"` // error, warn, info, debug
	LogFile     string `yaml:"log_file,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// Default configuration values.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultMaxConcurrent is the default number of parallel side file downloads.
	DefaultMaxConcurrent = 4

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	cacheDir, err := fsutil.GetCacheDir()
	if err != nil {
		// Fallback to current directory if we can't determine the cache dir
		cacheDir = "."
	}

	return &Config{
		Settings: Settings{
			CacheDir:      cacheDir,
			HTTPTimeout:   DefaultHTTPTimeout,
			MaxConcurrent: DefaultMaxConcurrent,
			UserAgent:     http.DefaultUserAgent,
			TransferTool:  "aria2c",
			StatsTool:     metadata.DefaultStatsTool,
			LogLevel:      "info",
		},
	}
}

// LoadConfig loads configuration from a file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	// Atomically replace the config file
	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigMarshal, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateMirrors(c.Mirrors); err != nil {
		return err
	}
	if err := validateCatalogs(c.Catalogs); err != nil {
		return err
	}
	return validateSettings(c.Settings)
}

func validateMirrors(mirrors []*MirrorConfig) error {
	for _, m := range mirrors {
		if m.URL == "" {
			return errors.ErrMirrorURLEmptyWithName(m.Country)
		}
	}
	return nil
}

func validateCatalogs(catalogs map[string]string) error {
	for name := range catalogs {
		if _, ok := catalog.DefaultURLs[name]; !ok {
			return errors.ErrUnknownCatalogWithName(name, catalog.ServiceNames())
		}
	}
	return nil
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return errors.ErrHTTPTimeoutNegative
	}
	if s.MaxConcurrent < 1 {
		return errors.ErrMaxConcurrentLow
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// Sites returns the configured planet mirrors, or the built-in list when
// none are configured.
func (c *Config) Sites() []*mirror.Site {
	if len(c.Mirrors) == 0 {
		return mirror.DefaultSites()
	}
	sites := make([]*mirror.Site, 0, len(c.Mirrors))
	for _, m := range c.Mirrors {
		base := m.URL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		sites = append(sites, &mirror.Site{Country: m.Country, BaseURL: base, AvoidByDefault: m.AvoidByDefault})
	}
	return sites
}

// CatalogURL returns the configured index URL of service, or "" for the
// service default.
func (c *Config) CatalogURL(service string) string {
	return c.Catalogs[service]
}

// GetCacheDir returns the base cache directory from settings.
func (c *Config) GetCacheDir() string {
	return c.Settings.CacheDir
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.CacheDir == "" {
		c.Settings.CacheDir = defaults.Settings.CacheDir
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.MaxConcurrent == 0 {
		c.Settings.MaxConcurrent = defaults.Settings.MaxConcurrent
	}
	if c.Settings.UserAgent == "" {
		c.Settings.UserAgent = defaults.Settings.UserAgent
	}
	if c.Settings.TransferTool == "" {
		c.Settings.TransferTool = defaults.Settings.TransferTool
	}
	if c.Settings.StatsTool == "" {
		c.Settings.StatsTool = defaults.Settings.StatsTool
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}
