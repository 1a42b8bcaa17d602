package cache

import "fmt"

// Common cache errors.
var (
	// ErrCacheMiss is returned when a named document is not cached.
	ErrCacheMiss = fmt.Errorf("document not cached")

	// ErrCacheClean is returned when there's an error cleaning the cache.
	ErrCacheClean = fmt.Errorf("failed to clean cache")

	// ErrCacheDirectory is returned when there's an error with the cache directory.
	ErrCacheDirectory = fmt.Errorf("invalid cache directory")
)
