// Package atomicfile replaces files by writing a temp file next to the target
// and renaming it into place.
package atomicfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// TempPrefix starts the name of every in-flight temp file. Directory readers
// that must ignore half-written files can skip names with this prefix.
const TempPrefix = ".tmp-"

// Write creates path atomically with the content produced by fn.
// The rename is the only commit point: if fn, the flush or the close fails,
// the temp file is removed and any existing file at path is left untouched.
func Write(path string, perm os.FileMode, fn func(w io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, TempPrefix+base+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close() // Already failed; the temp file is discarded anyway
			_ = os.Remove(tmpName)
		}
	}()

	if err = fn(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// WriteFile is like os.WriteFile but atomic.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return Write(path, perm, func(w io.Writer) error {
		n, err := w.Write(data)
		if err == nil && n < len(data) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return fmt.Errorf("writing temp file: %w", err)
		}
		return nil
	})
}

// IsTemp reports whether name looks like an in-flight temp file.
func IsTemp(name string) bool {
	return strings.HasPrefix(name, TempPrefix)
}
