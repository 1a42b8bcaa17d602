// Package archive transparently decompresses documents served by catalog services.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mholt/archives"
)

// Manager handles decompression of downloaded documents.
type Manager struct{}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// Decompress returns the plain content of data. The compression format is
// detected from name and the leading bytes; data that matches no known
// compression is returned unchanged.
func (am *Manager) Decompress(ctx context.Context, name string, data []byte) ([]byte, error) {
	format, stream, err := archives.Identify(ctx, name, bytes.NewReader(data))
	if errors.Is(err, archives.NoMatch) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to identify format of %s: %w", name, err)
	}

	decompressor, ok := format.(archives.Decompressor)
	if !ok {
		return data, nil
	}

	reader, err := decompressor.OpenReader(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s reader for %s: %w", format.Extension(), name, err)
	}
	defer func() { _ = reader.Close() }()

	plain, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", name, err)
	}
	return plain, nil
}
