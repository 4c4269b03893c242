// Package gateways provides filesystem implementations of the domain gateway interfaces.
package gateways

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ochairo/asfault-reports/internal/domain/services"
)

// linkFile publishes a finished temp file; replaced in tests
var linkFile = os.Link

// EnsureDir creates dir and its parents. An already existing directory is not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		if errors.Is(err, fs.ErrExist) {
			if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
				return nil
			}
		}
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// writeCSVReport writes header plus the rows produced by fill to path.
//
// Rows go to a temp file in the destination directory which is linked into place
// only after fill succeeds, so a failed report never shows up at path. The link
// does not replace an existing file: a finished report is never overwritten.
func writeCSVReport(path string, header []string, fill func(w *csv.Writer) error) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := fill(w); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	return publish(tmpName, path)
}

// publish makes src visible at dst without replacing an existing dst.
// Filesystems without hard links get an exclusive-create copy instead.
func publish(src, dst string) error {
	linkErr := linkFile(src, dst)
	if linkErr == nil {
		return nil
	}
	if errors.Is(linkErr, fs.ErrExist) {
		return fmt.Errorf("%w: %s", services.ErrReportExists, dst)
	}

	if err := copyExclusive(src, dst); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", services.ErrReportExists, dst)
		}
		return fmt.Errorf("failed to publish report %s: %w (link: %v)", dst, err, linkErr)
	}
	return nil
}

func copyExclusive(src, dst string) error {
	//nolint:gosec // G304: src is our own temp file
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	//nolint:errcheck // Defer close on read-only file
	defer in.Close()

	//nolint:gosec // G304: dst is the computed report path
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return nil
}

// FileExists reports whether a regular file or directory entry exists at path
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
