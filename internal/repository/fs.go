package repository

import "github.com/spf13/afero"

// FileSystemRepository is where config and .env files are read from.
type FileSystemRepository interface {
	afero.Fs
}

// NewOSFileSystem returns the host filesystem.
func NewOSFileSystem() FileSystemRepository {
	return afero.NewOsFs()
}
