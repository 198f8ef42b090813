// Package input opens model and error matrix files, decompressing ".gz"
// files on the fly.
package input

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tikz/alphasense/errs"
)

// Open opens path for reading. A missing file is reported as errs.ErrNotFound.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	if filepath.Ext(path) != ".gz" {
		return f, nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: gzip %s: %v", errs.ErrParse, path, err)
	}
	return &gzipFile{Reader: zr, f: f}, nil
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	zerr := g.Reader.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}
