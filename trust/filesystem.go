package trust

import "os"

// FileSystem is the interface the rule loader and the blacklist store use to
// persist their state, so tests can run without touching disk.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

// FileSystemImpl is the OS-backed implementation of FileSystem.
type FileSystemImpl struct {
}

// ReadFile reads the named file and returns its contents.
func (fs *FileSystemImpl) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile writes data to the named file, creating it if necessary.
func (fs *FileSystemImpl) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0644)
}
