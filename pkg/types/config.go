package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Mode selects how the fetch pipeline interprets its invocation.
type Mode string

const (
	// ModeDirect is a normal command-line invocation: an optional explicit
	// filename is honoured and the viewer only opens on request.
	ModeDirect Mode = "direct"

	// ModeHandler is used when the tool is registered as a URL handler.
	// Only the locator is meaningful; explicit filenames are ignored and
	// the viewer is always opened.
	ModeHandler Mode = "handler"
)

// FetchConfig holds settings for a single fetch-and-link invocation.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// CacheDir is the root of the local paper cache
	// (default ~/.local/share/papers).
	CacheDir string `json:"cache_dir" yaml:"cache_dir"`

	// WorkDir is the directory that receives the symlink. Empty means the
	// process working directory.
	WorkDir string `json:"work_dir" yaml:"work_dir"`

	// Open requests launching a viewer on the linked PDF.
	Open bool `json:"open" yaml:"open"`

	// Viewer names the PDF viewer: system, zathura, evince, okular, skim, preview.
	Viewer string `json:"viewer" yaml:"viewer"`

	// Mode is decided once at process start and never changed afterwards.
	Mode Mode `json:"mode" yaml:"mode"`
}
