// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package msword2image

import (
	"fmt"
	"os"
	"path/filepath"
)

// destination streams an image into a temp file next to path and moves it
// into place on success. The final file is never partially written.
type destination struct {
	path string
	tmp  *os.File
}

func openDestination(path string) (*destination, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".msword2image-*.tmp")
	if err != nil {
		return nil, err
	}
	return &destination{path: path, tmp: tmp}, nil
}

func (d *destination) Write(p []byte) (int, error) {
	return d.tmp.Write(p)
}

// finish commits the temp file when err is nil and discards it otherwise.
// It returns err unchanged, or the commit failure.
func (d *destination) finish(err error) error {
	if err != nil {
		d.discard()
		return err
	}

	if err := d.tmp.Chmod(0o644); err != nil {
		d.discard()
		return filesystemError(err, fmt.Sprintf("writing output file %q", d.path))
	}
	if err := d.tmp.Close(); err != nil {
		os.Remove(d.tmp.Name())
		return filesystemError(err, fmt.Sprintf("writing output file %q", d.path))
	}
	if err := os.Rename(d.tmp.Name(), d.path); err != nil {
		os.Remove(d.tmp.Name())
		return filesystemError(err, fmt.Sprintf("moving image into %q", d.path))
	}
	return nil
}

func (d *destination) discard() {
	d.tmp.Close()
	os.Remove(d.tmp.Name())
}
