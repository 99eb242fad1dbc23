// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import "errors"

// Pipeline failures. Callers match them with errors.Is; the wrapped text
// carries the detail.
var (
	ErrInvalidLocator    = errors.New("invalid locator")
	ErrUnsupportedHost   = errors.New("unsupported host")
	ErrFetchFailed       = errors.New("fetch failed")
	ErrMetadataNotFound  = errors.New("metadata not found")
	ErrMalformedMetadata = errors.New("malformed metadata")
	ErrLinkFailed        = errors.New("link failed")
)

// IsUsageError reports whether err stems from a bad locator, which the CLI
// reports as a usage error before any I/O has happened.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrInvalidLocator) || errors.Is(err, ErrUnsupportedHost)
}
