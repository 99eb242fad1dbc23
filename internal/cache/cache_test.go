// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper/pkg/types"
)

var sampleMeta = types.Metadata{
	Title:    "A Paper",
	Authors:  []string{"Alice Smith", "Bob Jones"},
	Abstract: "We study things.",
}

// countingFetch returns a FetchFunc that writes body and counts its calls.
func countingFetch(body string, calls *int) FetchFunc {
	return func(_ context.Context, w io.Writer) error {
		*calls++
		_, err := io.WriteString(w, body)
		return err
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "papers"))
	require.NoError(t, err)
	return s
}

func TestOpenCreatesLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "papers")
	s, err := Open(root)
	require.NoError(t, err)

	assert.Equal(t, root, s.Root())
	info, err := os.Stat(filepath.Join(root, "data"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenUnavailable(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Open(filepath.Join(blocker, "papers"))
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = Open("")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDefaultRootHonoursXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	root, err := DefaultRoot()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg-data/papers", root)

	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/tester")
	root, err = DefaultRoot()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.local/share/papers", root)
}

func TestEnsureDownloadsOnce(t *testing.T) {
	s := openTestStore(t)
	calls := 0
	fetch := countingFetch("%PDF-1.4 fake", &calls)

	path, downloaded, err := s.Ensure(context.Background(), "Smith23.pdf", fetch)
	require.NoError(t, err)
	assert.True(t, downloaded)
	assert.Equal(t, filepath.Join(s.Root(), "Smith23.pdf"), path)

	path2, downloaded, err := s.Ensure(context.Background(), "Smith23.pdf", fetch)
	require.NoError(t, err)
	assert.False(t, downloaded)
	assert.Equal(t, path, path2)
	assert.Equal(t, 1, calls)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
}

func TestEnsureFetchFailureLeavesNoEntry(t *testing.T) {
	s := openTestStore(t)
	boom := errors.New("connection reset")

	_, _, err := s.Ensure(context.Background(), "Smith23.pdf", func(_ context.Context, w io.Writer) error {
		io.WriteString(w, "%PDF-1.4 trunc")
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, statErr := os.Stat(s.PDFPath("Smith23.pdf"))
	assert.True(t, os.IsNotExist(statErr), "failed download must not leave a cache entry")

	entries, err := os.ReadDir(s.Root())
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file %s left behind", e.Name())
	}

	// A retry after the failure downloads normally.
	calls := 0
	_, downloaded, err := s.Ensure(context.Background(), "Smith23.pdf", countingFetch("ok", &calls))
	require.NoError(t, err)
	assert.True(t, downloaded)
	assert.Equal(t, 1, calls)
}

func TestEnsureRejectsDirectoryEntry(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, os.Mkdir(s.PDFPath("Odd23.pdf"), 0o755))

	calls := 0
	_, _, err := s.Ensure(context.Background(), "Odd23.pdf", countingFetch("x", &calls))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 0, calls)
}

func TestEnsureCachedRefreshesSidecar(t *testing.T) {
	s := openTestStore(t)
	calls := 0
	fetch := countingFetch("%PDF", &calls)

	_, _, err := s.EnsureCached(context.Background(), "SmiJon23.pdf", sampleMeta, fetch)
	require.NoError(t, err)

	updated := sampleMeta
	updated.Title = "A Better Paper"
	_, downloaded, err := s.EnsureCached(context.Background(), "SmiJon23.pdf", updated, fetch)
	require.NoError(t, err)
	assert.False(t, downloaded)
	assert.Equal(t, 1, calls)

	data, err := os.ReadFile(s.SidecarPath("SmiJon23.pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "A Better Paper\n"))
}

func TestFormatSidecar(t *testing.T) {
	got := FormatSidecar(sampleMeta)
	want := "A Paper\n\nAlice Smith\nBob Jones\n\nWe study things.\n"
	assert.Equal(t, want, got)
}

func TestSidecarPathUsesStem(t *testing.T) {
	s := openTestStore(t)
	assert.Equal(t, filepath.Join(s.Root(), "data", "BCDE22"), s.SidecarPath("BCDE22.pdf"))
	assert.Equal(t, filepath.Join(s.Root(), "data"), s.DataDir())
	assert.Equal(t, "BCDE22", Stem("BCDE22.pdf"))
	assert.Equal(t, "notes", Stem("notes"))
	assert.Equal(t, "notes", Stem("notes.PDF"))
}
