package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cperrin88/geofetch/pkg/errors"
)

// SetValue sets a setting by its YAML key. Durations use time.ParseDuration
// syntax ("45s", "2m"). An invalid value leaves the config unchanged.
func (c *Config) SetValue(key, value string) error {
	updated := c.Settings
	s := &updated
	switch key {
	case "cache_dir":
		s.CacheDir = value
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(errors.ErrConfigValidation, "invalid duration for %s: %s", key, value)
		}
		s.HTTPTimeout = d
	case "max_concurrent":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(errors.ErrConfigValidation, "invalid number for %s: %s", key, value)
		}
		s.MaxConcurrent = n
	case "user_agent":
		s.UserAgent = value
	case "transfer_tool":
		s.TransferTool = value
	case "stats_tool":
		s.StatsTool = value
	case "hooks_dir":
		s.HooksDir = value
	case "post_download_script":
		s.PostDownloadScript = value
	case "log_level":
		s.LogLevel = value
	case "log_file":
		s.LogFile = value
	case "metrics_file":
		s.MetricsFile = value
	default:
		return fmt.Errorf("%w: %s", errors.ErrUnknownConfigKey, key)
	}
	if err := validateSettings(updated); err != nil {
		return err
	}
	c.Settings = updated
	return nil
}

// GetValue returns a setting by its YAML key.
func (c *Config) GetValue(key string) (string, error) {
	value, ok := c.ToMap()[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", errors.ErrUnknownConfigKey, key)
	}
	return value, nil
}

// ToMap renders every setting as a string keyed by its YAML name.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)

	settingsValue := reflect.ValueOf(c.Settings)
	settingsType := settingsValue.Type()

	for i := 0; i < settingsValue.NumField(); i++ {
		field := settingsType.Field(i)
		yamlTag := field.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}

		// Handle yaml tags with options (e.g., "cache_dir,omitempty")
		yamlKey := strings.Split(yamlTag, ",")[0]

		fieldValue := settingsValue.Field(i)
		switch v := fieldValue.Interface().(type) {
		case time.Duration:
			result[yamlKey] = v.String()
		case int:
			result[yamlKey] = strconv.Itoa(v)
		case string:
			result[yamlKey] = v
		default:
			result[yamlKey] = fmt.Sprintf("%v", v)
		}
	}

	return result
}
