// Package source opens the government data files the jobs read and decodes
// their delimited rows.
package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/vvka-141/schoolfacts/internal/checksum"
	"github.com/vvka-141/schoolfacts/pkg/schoolfacts"
)

// File is an open source file whose contents are hashed as they are read.
type File struct {
	*checksum.Reader
	Path string
	f    *os.File
}

// Open opens path for reading. A missing file is reported as ErrSourceNotFound.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, schoolfacts.ErrSourceNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &File{
		Reader: checksum.New().Reader(f),
		Path:   path,
		f:      f,
	}, nil
}

// Checksum drains any unread bytes and returns the SHA-256 of the whole file.
func (f *File) Checksum() (string, error) {
	if err := f.Drain(); err != nil {
		return "", fmt.Errorf("read %s: %w", f.Path, err)
	}
	return f.Sum(), nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}
