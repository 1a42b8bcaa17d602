package cache

// Store reads and overwrites named cached documents.
type Store interface {
	// Read returns the cached document or an error wrapping ErrCacheMiss.
	Read(name string) ([]byte, error)
	// Write replaces the cached document.
	Write(name string, data []byte) error
}

// CleanResult contains information about what was cleaned.
type CleanResult struct {
	TotalFreed   int64
	FilesRemoved int
}

// Info represents cache information.
type Info struct {
	Directory    string
	CatalogSize  int64
	CatalogFiles int
}
