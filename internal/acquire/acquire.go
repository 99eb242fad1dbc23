// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire resolves ePrint locators, names papers, and drives the
// cache-and-link pipeline.
//
// A fetch runs strictly in order: resolve the locator, fetch and parse the
// landing page, derive the filename, make sure the PDF is cached, link it
// into the working directory, and optionally open it. Nothing runs in
// parallel and nothing is retried.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pdiddy/paper/internal/cache"
	"github.com/pdiddy/paper/internal/httputil"
	"github.com/pdiddy/paper/pkg/types"
)

// Recorder stores a catalog entry for a cached paper.
type Recorder interface {
	Record(ctx context.Context, filename string, id types.Identifier, meta types.Metadata, pdfPath string) error
}

// Opener launches a viewer for a PDF path.
type Opener interface {
	Open(path string) error
}

// Result describes the outcome of a single Fetch.
type Result struct {
	Identifier  types.Identifier
	Metadata    types.Metadata
	DerivedName string
	Filename    string
	PDFPath     string
	LinkPath    string

	// Downloaded is false when the PDF was already cached.
	Downloaded bool

	// Linked is false when a link (or any file) already existed at LinkPath.
	Linked bool

	Opened  bool
	OpenErr error
}

// Fetcher runs the fetch pipeline against one cache.
type Fetcher struct {
	client  *http.Client
	store   *cache.Store
	cfg     types.FetchConfig
	catalog Recorder
	opener  Opener
	out     io.Writer
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCatalog records every cached paper in r.
func WithCatalog(r Recorder) Option {
	return func(f *Fetcher) { f.catalog = r }
}

// WithOpener sets the viewer used when opening is requested.
func WithOpener(o Opener) Option {
	return func(f *Fetcher) { f.opener = o }
}

// WithOutput sets where status lines are written (default io.Discard).
func WithOutput(w io.Writer) Option {
	return func(f *Fetcher) { f.out = w }
}

// New returns a Fetcher. cfg.Mode is fixed for the Fetcher's lifetime.
func New(client *http.Client, store *cache.Store, cfg types.FetchConfig, opts ...Option) *Fetcher {
	if cfg.Mode == "" {
		cfg.Mode = types.ModeDirect
	}
	f := &Fetcher{
		client: client,
		store:  store,
		cfg:    cfg,
		out:    io.Discard,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch resolves locator, caches the paper, and links it into the working
// directory under name, or under the derived filename when name is empty.
//
// On a link failure the returned Result is still populated: the cache entry
// is complete and a later call will reuse it.
func (f *Fetcher) Fetch(ctx context.Context, locator, name string) (*Result, error) {
	id, err := Resolve(locator)
	if err != nil {
		return nil, err
	}
	res := &Result{Identifier: id}

	meta, err := f.fetchMetadata(ctx, id)
	if err != nil {
		return nil, err
	}
	res.Metadata = meta

	// An explicit name wins; the derived one is then only reported.
	res.DerivedName, err = Derive(meta.Authors, id.Year)
	switch {
	case name != "" && f.cfg.Mode != types.ModeHandler:
		res.Filename = NormalizeFilename(name)
		if err != nil {
			fmt.Fprintf(f.out, "using name: %s (no derived name: %v)\n", res.Filename, err)
		} else {
			fmt.Fprintf(f.out, "using name: %s (derived %s)\n", res.Filename, res.DerivedName)
		}
	case err != nil:
		return nil, fmt.Errorf("naming %s: %w", id, err)
	default:
		res.Filename = res.DerivedName
	}

	res.PDFPath, res.Downloaded, err = f.store.EnsureCached(ctx, res.Filename, meta, f.downloadPDF(id, res.Filename))
	if err != nil {
		return nil, err
	}
	if res.Downloaded {
		fmt.Fprintf(f.out, "downloaded: %s (%s)\n", res.Filename, id)
	} else {
		fmt.Fprintf(f.out, "cached: %s (already present)\n", res.Filename)
	}

	if f.catalog != nil {
		if err := f.catalog.Record(ctx, res.Filename, id, meta, res.PDFPath); err != nil {
			fmt.Fprintf(f.out, "warning: catalog update failed: %v\n", err)
		}
	}

	if err := f.link(res); err != nil {
		return res, err
	}

	if f.cfg.Open || f.cfg.Mode == types.ModeHandler {
		f.open(res)
	}
	return res, nil
}

func (f *Fetcher) fetchMetadata(ctx context.Context, id types.Identifier) (types.Metadata, error) {
	markup, err := httputil.GetText(ctx, f.client, PageURL(id), f.cfg.HTTPConfig)
	if err != nil {
		return types.Metadata{}, fmt.Errorf("%w: landing page for %s: %v", ErrFetchFailed, id, err)
	}
	meta, err := Extract(markup)
	if err != nil {
		return types.Metadata{}, fmt.Errorf("reading metadata for %s: %w", id, err)
	}
	return meta, nil
}

// downloadPDF returns the deferred fetch used by the cache. It only runs
// when the PDF is not cached yet.
func (f *Fetcher) downloadPDF(id types.Identifier, filename string) cache.FetchFunc {
	return func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(f.out, "downloading: %s (%s)\n", filename, id)
		resp, err := httputil.Get(ctx, f.client, PDFURL(id), f.cfg.HTTPConfig, "application/pdf")
		if err != nil {
			return fmt.Errorf("%w: PDF for %s: %v", ErrFetchFailed, id, err)
		}
		defer resp.Body.Close()

		if _, err := io.Copy(w, resp.Body); err != nil {
			return fmt.Errorf("%w: writing PDF for %s: %v", ErrFetchFailed, id, err)
		}
		return nil
	}
}

// link creates <workdir>/<filename> pointing at the cached PDF unless
// something already exists at that name.
func (f *Fetcher) link(res *Result) error {
	dir := f.cfg.WorkDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("%w: locating working directory: %v", ErrLinkFailed, err)
		}
		dir = wd
	}
	res.LinkPath = filepath.Join(dir, res.Filename)

	if _, err := os.Lstat(res.LinkPath); err == nil {
		fmt.Fprintf(f.out, "exists: %s (not relinked)\n", res.LinkPath)
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: checking %s: %v", ErrLinkFailed, res.LinkPath, err)
	}

	if err := os.Symlink(res.PDFPath, res.LinkPath); err != nil {
		return fmt.Errorf("%w: %v", ErrLinkFailed, err)
	}
	res.Linked = true
	fmt.Fprintf(f.out, "linked: %s -> %s\n", res.LinkPath, res.PDFPath)
	return nil
}

// open launches the viewer on the new link, or on the cached PDF when
// something else already occupied the link path.
func (f *Fetcher) open(res *Result) {
	target := res.PDFPath
	if res.Linked {
		target = res.LinkPath
	}
	if f.opener == nil {
		res.OpenErr = errors.New("no viewer configured")
	} else {
		res.OpenErr = f.opener.Open(target)
	}
	if res.OpenErr != nil {
		fmt.Fprintf(f.out, "warning: opening %s failed: %v\n", res.Filename, res.OpenErr)
		return
	}
	res.Opened = true
}
