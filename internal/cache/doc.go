// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores downloaded papers under a single local directory.
//
// Layout:
//
//	<root>/<stem>.pdf   the cached PDF
//	<root>/data/<stem>  plain-text sidecar: title, authors, abstract
//	<root>/data/.catalog.db  listing index, see package catalog
//
// The presence of <root>/<stem>.pdf as a regular file is the only
// consistency check; there are no checksums and entries are never removed.
// PDFs are written to a temporary file in <root> and renamed into place,
// so a failed transfer never leaves a truncated entry behind.
//
// Two processes resolving the same filename at the same time may both see
// the entry as absent and both download it. The bytes are expected to be
// identical and the second rename simply replaces the first, so no lock is
// taken.
package cache
