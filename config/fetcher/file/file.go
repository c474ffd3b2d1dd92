package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotRegularFile is returned when the path exists but is not a regular file.
var ErrNotRegularFile = errors.New("not a regular file")

// IsRegular reports whether fpath names an existing regular file.
// Symlinks are followed.
func IsRegular(fpath string) bool {
	if fpath == "" {
		return false
	}

	stat, err := os.Stat(filepath.Clean(fpath))
	if err != nil {
		return false
	}

	return stat.Mode().IsRegular()
}

// Fetcher implements config.DataFetcher for a single file on disk.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor that reads fpath and caches its contents.
// The constructor form lets an Fx container decide when the read happens.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		stat, err := os.Stat(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
		}

		if !stat.Mode().IsRegular() {
			return nil, fmt.Errorf("path %q: %w", cleanPath, ErrNotRegularFile)
		}

		data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and checked above
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
		}

		return &Fetcher{
			filepath: cleanPath,
			data:     data,
		}, nil
	}
}

// Path returns the cleaned path the data was read from.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Fetch returns a copy of the bytes read at construction time.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
