package readme

import (
	"errors"
	"io/fs"
	"os"
)

// FileSystem abstracts the file operations the generation pipeline performs.
type FileSystem interface {
	FileExists(filePath string) (bool, error)
	ReadFile(filePath string) ([]byte, error)
	WriteFile(filePath string, content []byte, permissions fs.FileMode) error
}

// OSFileSystem implements FileSystem against the host filesystem.
type OSFileSystem struct{}

// NewOSFileSystem constructs an OSFileSystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// FileExists reports whether a file or directory exists at the path.
func (fileSystem *OSFileSystem) FileExists(filePath string) (bool, error) {
	_, statError := os.Stat(filePath)
	if statError == nil {
		return true, nil
	}
	if errors.Is(statError, fs.ErrNotExist) {
		return false, nil
	}
	return false, statError
}

// ReadFile returns the contents of the named file.
func (fileSystem *OSFileSystem) ReadFile(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}

// WriteFile writes content to the named file with the given permissions.
func (fileSystem *OSFileSystem) WriteFile(filePath string, content []byte, permissions fs.FileMode) error {
	return os.WriteFile(filePath, content, permissions)
}
