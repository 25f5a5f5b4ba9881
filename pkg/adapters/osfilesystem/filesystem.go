// Package osfilesystem provides a filesystem implementation backed by afero.
package osfilesystem

import (
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/user/ffplayer/pkg/ports"
)

// FileSystem implements ports.FileSystem on top of an afero.Fs.
type FileSystem struct {
	fs afero.Fs
}

// New creates a FileSystem over the operating system.
func New() *FileSystem {
	return &FileSystem{fs: afero.NewOsFs()}
}

// NewMemory creates a FileSystem held entirely in memory.
func NewMemory() *FileSystem {
	return &FileSystem{fs: afero.NewMemMapFs()}
}

// NewWithFs wraps an existing afero.Fs.
func NewWithFs(fs afero.Fs) *FileSystem {
	return &FileSystem{fs: fs}
}

// Open opens a file for reading and seeking.
func (f *FileSystem) Open(path string) (io.ReadSeekCloser, error) {
	return f.fs.Open(path)
}

// ReadFile reads the entire contents of a file.
func (f *FileSystem) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(f.fs, path)
}

// WriteFile writes data to a file, creating it if necessary.
func (f *FileSystem) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := f.fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return afero.WriteFile(f.fs, path, data, 0644)
}

// MkdirAll creates a directory and all parent directories.
func (f *FileSystem) MkdirAll(path string) error {
	return f.fs.MkdirAll(path, 0755)
}

// Exists checks if a file or directory exists.
func (f *FileSystem) Exists(path string) (bool, error) {
	return afero.Exists(f.fs, path)
}

// Remove deletes a file or empty directory.
func (f *FileSystem) Remove(path string) error {
	return f.fs.Remove(path)
}

// Ensure FileSystem implements ports.FileSystem
var _ ports.FileSystem = (*FileSystem)(nil)
