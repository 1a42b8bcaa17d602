// Package fsutil provides utility functions and constants for file system operations.
package fsutil

// File and directory permission constants.
const (
	FileModeDefault = 0o644 // -rw-r--r--: Default for regular files
	DirModeDefault  = 0o755 // drwxr-xr-x: Default for directories
)
