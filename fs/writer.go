// Package fs writes profile documents to the local file system.
package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/hcprofile"
)

// Ensure Writer implements hcprofile.DocumentWriter at compile time.
var _ hcprofile.DocumentWriter = (*Writer)(nil)

// Writer writes documents into a single directory. Each file is written to
// a temporary file first and renamed into place, so readers never observe a
// partial document.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteDocument writes content to baseDir/name and returns the full path.
// The directory is created if needed. name must be a bare file name.
func (w *Writer) WriteDocument(ctx context.Context, name, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", hcprofile.Errorf(hcprofile.EINVALID, "invalid document name %q", name)
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(w.baseDir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}

	path := filepath.Join(w.baseDir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
