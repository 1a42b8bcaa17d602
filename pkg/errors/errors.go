package errors

import (
	"fmt"
	"strings"
)

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath     = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath   = fmt.Errorf("invalid config file path")
	ErrConfigParse         = fmt.Errorf("failed to parse config")
	ErrConfigValidation    = fmt.Errorf("invalid configuration")
	ErrConfigEncode        = fmt.Errorf("failed to encode config")
	ErrConfigDirectory     = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate    = fmt.Errorf("failed to create config file")
	ErrConfigFileRename    = fmt.Errorf("failed to rename temporary config file")
	ErrConfigFileExists    = fmt.Errorf("configuration file already exists (use --force to overwrite)")
	ErrConfigMarshal       = fmt.Errorf("failed to marshal config to YAML")
	ErrHTTPTimeoutNegative = fmt.Errorf("http_timeout cannot be negative")
	ErrMaxConcurrentLow    = fmt.Errorf("max_concurrent must be at least 1")
	ErrInvalidLogLevel     = fmt.Errorf("invalid log level")
	ErrUnknownConfigKey    = fmt.Errorf("unknown configuration key")
	ErrEmptyMirrorURL      = fmt.Errorf("mirror URL cannot be empty")
	ErrInvalidZoom         = fmt.Errorf("invalid zoom level")

	// Mirror and catalog errors.
	ErrUnexpectedStatus    = fmt.Errorf("unexpected status code")
	ErrInconsistentCatalog = fmt.Errorf("inconsistent mirror metadata")
	ErrNoConsistentSource  = fmt.Errorf("no consistent source available")
	ErrMalformedCatalog    = fmt.Errorf("malformed extract catalog")
	ErrUnknownCatalog      = fmt.Errorf("unknown catalog service")
	ErrExtractNotFound     = fmt.Errorf("extract not found")
	ErrAmbiguousExtract    = fmt.Errorf("ambiguous extract id")

	// Transfer errors.
	ErrInvalidPath      = fmt.Errorf("invalid path")
	ErrDownloadFailed   = fmt.Errorf("download failed")
	ErrFileHashMismatch = fmt.Errorf("file hash mismatch")
	ErrTransferFailed   = fmt.Errorf("transfer tool failed")
	ErrEmptyPlan        = fmt.Errorf("download plan has no source URLs")

	// Post-download errors.
	ErrExtraction     = fmt.Errorf("failed to extract file statistics")
	ErrInvalidVersion = fmt.Errorf("invalid descriptor version")

	// Hook errors.
	ErrHookExecution = fmt.Errorf("error executing hook")
	ErrHookScript    = fmt.Errorf("hook script error")
	ErrHookLoad      = fmt.Errorf("failed to load hook")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrUnexpectedStatusWithURL reports a non-success HTTP status for url.
func ErrUnexpectedStatusWithURL(url string, status int) error {
	return fmt.Errorf("%w: %d for %s", ErrUnexpectedStatus, status, url)
}

// ErrConflictingAttribute reports two differing values of attr claimed for one hash.
func ErrConflictingAttribute(attr, hash, first, second string) error {
	return fmt.Errorf("%w: hash %s has conflicting %s values %s and %s", ErrInconsistentCatalog, hash, attr, first, second)
}

// ErrSharedAttribute reports one attribute value claimed by two different hashes.
func ErrSharedAttribute(attr, value, firstHash, secondHash string) error {
	return fmt.Errorf("%w: %s %s is claimed by hashes %s and %s", ErrInconsistentCatalog, attr, value, firstHash, secondHash)
}

// ErrExtractNotFoundWithID creates an error for an id that matched nothing.
func ErrExtractNotFoundWithID(id, service string) error {
	return fmt.Errorf("%w: %q in %s catalog (use --force to refresh the catalog)", ErrExtractNotFound, id, service)
}

// ErrAmbiguousExtractWithCandidates lists every full id that matched id.
func ErrAmbiguousExtractWithCandidates(id string, candidates []string) error {
	return fmt.Errorf("%w: %q matches %d extracts, use one of: %s", ErrAmbiguousExtract, id, len(candidates), strings.Join(candidates, ", "))
}

// ErrUnknownCatalogWithName creates an error for an unsupported catalog service.
func ErrUnknownCatalogWithName(name string, known []string) error {
	return fmt.Errorf("%w: %s. Valid values are: %v", ErrUnknownCatalog, name, known)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: error, warn, info, debug", ErrInvalidLogLevel, level)
}

// ErrMirrorURLEmptyWithName is a helper to create a wrapped error with the mirror name.
func ErrMirrorURLEmptyWithName(name string) error {
	return fmt.Errorf("mirror '%s': %w", name, ErrEmptyMirrorURL)
}
