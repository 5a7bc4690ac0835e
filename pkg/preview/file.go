package preview

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// File is a handle to a locally selected file. Open may be called more than
// once: once for the preview and again when the payload is built.
type File interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// LocalFile returns a File backed by a path on the operating system.
func LocalFile(path string) File {
	return localFile{path: path}
}

type localFile struct {
	path string
}

func (f localFile) Name() string {
	return filepath.Base(f.path)
}

func (f localFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// BytesFile returns an in-memory File.
func BytesFile(name string, data []byte) File {
	return bytesFile{name: name, data: append([]byte(nil), data...)}
}

type bytesFile struct {
	name string
	data []byte
}

func (f bytesFile) Name() string {
	return f.name
}

func (f bytesFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// FSFile returns a File read from fsys.
func FSFile(fsys fs.FS, name string) File {
	return fsFile{fsys: fsys, name: name}
}

type fsFile struct {
	fsys fs.FS
	name string
}

func (f fsFile) Name() string {
	return filepath.Base(f.name)
}

func (f fsFile) Open() (io.ReadCloser, error) {
	if f.fsys == nil {
		return nil, fs.ErrInvalid
	}
	return f.fsys.Open(f.name)
}
