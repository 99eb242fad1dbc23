// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/paper/pkg/types"
)

const (
	dataDir = "data"
	appDir  = "papers"
)

// ErrUnavailable is returned (wrapped) when the cache directory cannot be
// created or an entry cannot be written.
var ErrUnavailable = errors.New("cache unavailable")

// FetchFunc writes the bytes of a PDF to w. It is called at most once per
// Ensure and only when the entry is missing.
type FetchFunc func(ctx context.Context, w io.Writer) error

// Store is a paper cache rooted at a local directory.
type Store struct {
	root string
}

// DefaultRoot returns the default cache directory: $XDG_DATA_HOME/papers,
// falling back to ~/.local/share/papers.
func DefaultRoot() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: locating home directory: %v", ErrUnavailable, err)
	}
	return filepath.Join(home, ".local", "share", appDir), nil
}

// Open creates root and its data/ subdirectory if needed and returns a
// Store for it.
func Open(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: empty cache directory", ErrUnavailable)
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %s: %v", ErrUnavailable, root, err)
	}
	for _, dir := range []string{abs, filepath.Join(abs, dataDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating directory %s: %v", ErrUnavailable, dir, err)
		}
	}
	return &Store{root: abs}, nil
}

// Root returns the absolute cache directory.
func (s *Store) Root() string {
	return s.root
}

// PDFPath returns where the PDF for filename lives in the cache.
func (s *Store) PDFPath(filename string) string {
	return filepath.Join(s.root, filename)
}

// DataDir returns the directory holding sidecars and the catalog.
func (s *Store) DataDir() string {
	return filepath.Join(s.root, dataDir)
}

// SidecarPath returns where the metadata sidecar for filename lives.
func (s *Store) SidecarPath(filename string) string {
	return filepath.Join(s.root, dataDir, Stem(filename))
}

// Stem strips the ".pdf" suffix, in any letter case, from filename.
func Stem(filename string) string {
	if n := len(filename) - len(".pdf"); n >= 0 && strings.EqualFold(filename[n:], ".pdf") {
		return filename[:n]
	}
	return filename
}

// EnsureCached refreshes the sidecar for filename and then makes sure the
// PDF is present, calling fetch only if it is not. It returns the PDF path
// and whether a download happened.
func (s *Store) EnsureCached(ctx context.Context, filename string, meta types.Metadata, fetch FetchFunc) (string, bool, error) {
	if err := s.WriteSidecar(filename, meta); err != nil {
		return "", false, err
	}
	return s.Ensure(ctx, filename, fetch)
}

// WriteSidecar overwrites the plain-text metadata file for filename.
func (s *Store) WriteSidecar(filename string, meta types.Metadata) error {
	path := s.SidecarPath(filename)
	if err := os.WriteFile(path, []byte(FormatSidecar(meta)), 0o644); err != nil {
		return fmt.Errorf("%w: writing sidecar %s: %v", ErrUnavailable, path, err)
	}
	return nil
}

// FormatSidecar renders meta as the sidecar text: the title, a blank line,
// one author per line, a blank line, then the abstract.
func FormatSidecar(meta types.Metadata) string {
	var b strings.Builder
	b.WriteString(meta.Title)
	b.WriteString("\n\n")
	for _, a := range meta.Authors {
		b.WriteString(a)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(meta.Abstract)
	b.WriteString("\n")
	return b.String()
}

// Ensure returns the cached PDF path for filename, downloading it through
// fetch when absent. The downloaded return value reports whether fetch ran.
func (s *Store) Ensure(ctx context.Context, filename string, fetch FetchFunc) (path string, downloaded bool, err error) {
	path = s.PDFPath(filename)

	info, err := os.Stat(path)
	switch {
	case err == nil && info.Mode().IsRegular():
		return path, false, nil
	case err == nil:
		return "", false, fmt.Errorf("%w: %s exists and is not a regular file", ErrUnavailable, path)
	case !errors.Is(err, os.ErrNotExist):
		return "", false, fmt.Errorf("%w: checking %s: %v", ErrUnavailable, path, err)
	}

	if err := s.writeAtomic(ctx, path, fetch); err != nil {
		return "", false, err
	}
	return path, true, nil
}

// writeAtomic streams fetch into a temporary file next to path and renames
// it into place on success. A fetch error is returned unwrapped so callers
// can classify it; filesystem errors are ErrUnavailable.
func (s *Store) writeAtomic(ctx context.Context, path string, fetch FetchFunc) error {
	tmpFile, err := os.CreateTemp(s.root, ".paper-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrUnavailable, err)
	}
	tmpPath := tmpFile.Name()

	fetchErr := fetch(ctx, tmpFile)
	closeErr := tmpFile.Close()
	if fetchErr != nil {
		os.Remove(tmpPath)
		return fetchErr
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: closing temp file: %v", ErrUnavailable, closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: renaming temp file: %v", ErrUnavailable, err)
	}
	return nil
}
