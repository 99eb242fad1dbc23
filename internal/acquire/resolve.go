// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pdiddy/paper/pkg/types"
)

// SupportedHost is the only repository host accepted by Resolve.
const SupportedHost = "eprint.iacr.org"

// eprintBase is the scheme and host used to build request URLs. Declared as
// a var so tests can substitute an httptest server.
var eprintBase = "https://" + SupportedHost

// Resolve validates raw as an ePrint URL of the form
// https://eprint.iacr.org/<year>/<number>[.pdf] and returns its identifier.
// It performs no I/O.
func Resolve(raw string) (types.Identifier, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return types.Identifier{}, fmt.Errorf("%w: %q: %v", ErrInvalidLocator, raw, err)
	}
	if u.Host == "" {
		return types.Identifier{}, fmt.Errorf("%w: %q has no host", ErrInvalidLocator, raw)
	}
	if !strings.EqualFold(u.Hostname(), SupportedHost) {
		return types.Identifier{}, fmt.Errorf("%w: %q (only %s is supported)", ErrUnsupportedHost, u.Hostname(), SupportedHost)
	}

	var segments []string
	for _, s := range strings.Split(u.Path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return types.Identifier{}, fmt.Errorf("%w: %q: expected /<year>/<number>", ErrInvalidLocator, raw)
	}

	year := segments[0]
	number := segments[1]
	for strings.HasSuffix(number, ".pdf") {
		number = strings.TrimSuffix(number, ".pdf")
	}
	if !isDigits(year) {
		return types.Identifier{}, fmt.Errorf("%w: %q: year %q is not numeric", ErrInvalidLocator, raw, year)
	}
	if number == "" {
		return types.Identifier{}, fmt.Errorf("%w: %q: empty paper number", ErrInvalidLocator, raw)
	}
	return types.Identifier{Year: year, Number: number}, nil
}

// PageURL returns the landing page URL carrying the BibTeX block.
func PageURL(id types.Identifier) string {
	return eprintBase + "/" + id.Year + "/" + id.Number
}

// PDFURL returns the direct PDF download URL.
func PDFURL(id types.Identifier) string {
	return PageURL(id) + ".pdf"
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
