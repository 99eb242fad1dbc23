// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"fmt"
	"strings"
)

const pdfExt = ".pdf"

// Derive builds the cryptobib-style filename for a paper: truncated author
// surnames in citation order followed by the two-digit year.
//
//	1 author     full surname      Smith23.pdf
//	2-3 authors  3 letters each    SmiJon23.pdf
//	4+ authors   1 letter each     BCDE22.pdf
//
// Surnames are the last whitespace-separated token of each name with every
// non-ASCII-letter removed.
func Derive(authors []string, year string) (string, error) {
	if len(authors) == 0 {
		return "", fmt.Errorf("%w: no authors to derive a filename from", ErrMalformedMetadata)
	}

	keep := 1
	switch n := len(authors); {
	case n == 1:
		keep = -1
	case n <= 3:
		keep = 3
	}

	var b strings.Builder
	for _, a := range authors {
		s := surname(a)
		if keep > 0 && len(s) > keep {
			s = s[:keep]
		}
		b.WriteString(s)
	}
	b.WriteString(shortYear(year))
	b.WriteString(pdfExt)
	return b.String(), nil
}

// NormalizeFilename appends ".pdf" to name unless it already ends with it,
// in any letter case.
func NormalizeFilename(name string) string {
	if len(name) >= len(pdfExt) && strings.EqualFold(name[len(name)-len(pdfExt):], pdfExt) {
		return name
	}
	return name + pdfExt
}

func surname(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	last := fields[len(fields)-1]
	var b strings.Builder
	for i := 0; i < len(last); i++ {
		c := last[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func shortYear(year string) string {
	if len(year) <= 2 {
		return year
	}
	return year[len(year)-2:]
}
