package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/dogbox/internal/client/services"
)

// localFile is a file on disk chosen for upload, registered under its base name.
type localFile struct {
	path string
	name string
	size int64
}

func (f *localFile) Name() string { return f.name }
func (f *localFile) Size() int64  { return f.size }

func (f *localFile) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}

// pathPicker holds at most one selected path, as the upload command does.
type pathPicker struct {
	selected *localFile
}

// pickPath selects path for upload. Directories are rejected.
func pickPath(path string) (*pathPicker, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &pathPicker{selected: &localFile{path: path, name: filepath.Base(path), size: fi.Size()}}, nil
}

func (p *pathPicker) Selected() services.SelectedFile {
	if p.selected == nil {
		return nil
	}
	return p.selected
}

func (p *pathPicker) Clear() {
	p.selected = nil
}
