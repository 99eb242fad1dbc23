// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the single-attempt HTTP helpers used by the
// fetch pipeline.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/paper/pkg/types"
)

// ErrStatus is returned (wrapped) when the server answers with anything
// other than 200 OK.
var ErrStatus = errors.New("unexpected HTTP status")

// maxTextSize caps the size of a page read by GetText.
const maxTextSize = 8 << 20

// Get issues one GET request for url with the configured User-Agent and the
// given Accept header. It never retries. A non-200 response is drained,
// closed, and reported as ErrStatus; on success the caller owns resp.Body.
func Get(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrStatus, resp.StatusCode, url)
	}
	return resp, nil
}

// GetText fetches url and returns the body as a string.
func GetText(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig) (string, error) {
	resp, err := Get(ctx, client, url, cfg, "text/html")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTextSize))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(data), nil
}
