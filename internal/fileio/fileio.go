package fileio

import (
	"os"
	"path/filepath"

	"github.com/faanross/simulacra_png/internal/config"
	"github.com/faanross/simulacra_png/internal/oops"
)

// Read reads a whole file into memory
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.New(oops.IO, err, "failed to read %s", path)
	}
	return data, nil
}

// Write writes data to a temporary file beside path and renames it into
// place, so a failed write never leaves a truncated output behind.
func Write(path string, data []byte, mode os.FileMode) error {
	if mode == 0 {
		mode = config.Config.OutputMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".simulapng-*")
	if err != nil {
		return oops.New(oops.IO, err, "failed to create temporary file for %s", path)
	}
	tmpName := tmp.Name()

	fail := func(err error, format string) error {
		tmp.Close()
		os.Remove(tmpName)
		return oops.New(oops.IO, err, format, path)
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err, "failed to write %s")
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(err, "failed to set mode on %s")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return oops.New(oops.IO, err, "failed to close %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return oops.New(oops.IO, err, "failed to move output into %s", path)
	}
	return nil
}
