// Package filex holds filesystem helpers for saving downloads.
package filex

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the directory that will contain path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return nil
}

// WriteAtomic writes what fill produces to a temporary file next to path and
// renames it over path once fill and the close succeed. On error path is left
// untouched and the temporary file is removed.
func WriteAtomic(path string, fill func(w io.Writer) error) (err error) {
	if err := EnsureParentDir(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.part")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}

	return nil
}
