// Package cache stores downloaded catalog documents on disk.
package cache

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cperrin88/geofetch/internal/logger"
	"github.com/cperrin88/geofetch/pkg/errors"
	"github.com/cperrin88/geofetch/pkg/fsutil"
	"github.com/spf13/afero"
)

// catalogsDir is the subdirectory holding catalog documents.
const catalogsDir = "catalogs"

// Manager is an afero backed Store rooted at a cache directory.
// Reads and writes are not locked against concurrent processes.
type Manager struct {
	fs        afero.Fs
	directory string
}

// NewManager creates a cache manager on fs rooted at directory.
func NewManager(fs afero.Fs, directory string) *Manager {
	return &Manager{
		fs:        fs,
		directory: directory,
	}
}

// Read returns the cached document called name.
func (cm *Manager) Read(name string) ([]byte, error) {
	path := cm.path(name)
	data, err := afero.ReadFile(cm.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrCacheMiss, "%s", path)
		}
		return nil, errors.Wrapf(err, "failed to read cached document %s", path)
	}
	return data, nil
}

// Write replaces the cached document called name. The content is written to
// a temporary file first and renamed into place.
func (cm *Manager) Write(name string, data []byte) error {
	path := cm.path(name)
	if err := cm.fs.MkdirAll(filepath.Dir(path), fsutil.DirModeDefault); err != nil {
		return errors.Wrapf(err, "failed to create cache directory")
	}

	tmp := path + ".tmp"
	if err := afero.WriteFile(cm.fs, tmp, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "failed to write cached document %s", tmp)
	}
	if err := cm.fs.Rename(tmp, path); err != nil {
		_ = cm.fs.Remove(tmp)
		return errors.Wrapf(err, "failed to replace cached document %s", path)
	}

	logger.Debug("Cached document", logger.Fields{"path": path, "bytes": len(data)})
	return nil
}

// Clean removes every cached document.
func (cm *Manager) Clean() (*CleanResult, error) {
	dir := filepath.Join(cm.directory, catalogsDir)
	size, files, err := cm.dirSizeAndFiles(dir)
	if err != nil {
		return nil, errors.Wrap(ErrCacheClean, err.Error())
	}
	if err := cm.fs.RemoveAll(dir); err != nil {
		return nil, errors.Wrapf(ErrCacheClean, "%s: %v", dir, err)
	}
	return &CleanResult{TotalFreed: size, FilesRemoved: files}, nil
}

// GetInfo returns information about the cache.
func (cm *Manager) GetInfo() (*Info, error) {
	size, files, err := cm.dirSizeAndFiles(filepath.Join(cm.directory, catalogsDir))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get catalog cache info")
	}
	return &Info{
		Directory:    cm.directory,
		CatalogSize:  size,
		CatalogFiles: files,
	}, nil
}

// GetDirectory returns the cache directory path.
func (cm *Manager) GetDirectory() string {
	return cm.directory
}

// SetDirectory sets the cache directory path.
func (cm *Manager) SetDirectory(dir string) error {
	if dir == "" {
		return ErrCacheDirectory
	}
	cm.directory = dir
	return nil
}

func (cm *Manager) path(name string) string {
	return filepath.Join(cm.directory, catalogsDir, name)
}

// dirSizeAndFiles sums the regular files below dir. A missing dir is empty.
func (cm *Manager) dirSizeAndFiles(dir string) (int64, int, error) {
	var size int64
	var files int
	err := afero.Walk(cm.fs, dir, func(_ string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			size += info.Size()
			files++
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return 0, 0, err
	}
	return size, files, nil
}
