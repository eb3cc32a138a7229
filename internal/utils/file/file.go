// Package file provides file utility functions for the curation pipeline's
// move/copy side effects.
package file

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnsureDir creates a directory if it doesn't exist. Creating an existing
// directory is not an error, so destination setup is idempotent.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory %q: %w", dir, err)
	}
	return nil
}

// Exists returns true when the path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Copy duplicates src into dst, creating dst's directory if needed. The
// source is left untouched.
func Copy(src, dst string) error {
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("could not copy %q to %q: %w", src, dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("could not close %q: %w", dst, err)
	}

	return nil
}

// Move relocates src to dst, removing it from the source. Rename is tried
// first, with a copy+remove fallback when src and dst are on different
// filesystems.
func Move(src, dst string) error {
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if err := Copy(src, dst); err != nil {
		return err
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("could not remove %q after copy: %w", src, err)
	}

	return nil
}
