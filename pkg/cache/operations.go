package cache

import (
	"fmt"

	"github.com/cperrin88/geofetch/internal/logger"
)

// Operation renders cache maintenance results for the command line.
type Operation struct {
	manager *Manager
}

// NewOperation creates a new cache operation instance.
func NewOperation(manager *Manager) *Operation {
	return &Operation{manager: manager}
}

// Clean removes all cached catalogs and describes what was freed.
func (op *Operation) Clean() (string, error) {
	logger.Debug("Cleaning cache", logger.Fields{"directory": op.manager.GetDirectory()})

	result, err := op.manager.Clean()
	if err != nil {
		return "", err
	}
	if result.FilesRemoved == 0 {
		return "No files were removed from the cache.", nil
	}
	return fmt.Sprintf("Successfully cleaned cache. Removed %d catalog(s), freed %s of disk space.",
		result.FilesRemoved, formatBytes(result.TotalFreed)), nil
}

// GetInfo describes the cache contents.
func (op *Operation) GetInfo() (string, error) {
	info, err := op.manager.GetInfo()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`Cache Information:
  Directory:    %s
  Catalogs:     %s (%d files)`,
		info.Directory,
		formatBytes(info.CatalogSize),
		info.CatalogFiles,
	), nil
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}
