// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Identifier is the canonical form of an ePrint locator. Year and Number are
// taken from the first two path segments of the URL; Number never carries a
// ".pdf" suffix.
type Identifier struct {
	// Year is the four-digit submission year (e.g. "2023").
	Year string `json:"year" yaml:"year"`

	// Number is the per-year report number (e.g. "1234").
	Number string `json:"number" yaml:"number"`
}

// String returns the identifier in "<year>/<number>" form.
func (id Identifier) String() string {
	return id.Year + "/" + id.Number
}

// Metadata holds the bibliographic fields scraped from a paper's landing page.
type Metadata struct {
	// Title is the paper title as it appears in the BibTeX block.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in citation order, untouched.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the abstract text, empty when the page has none.
	Abstract string `json:"abstract" yaml:"abstract"`
}

// CatalogRecord is one row of the local catalog of cached papers.
type CatalogRecord struct {
	// Stem is the filename without its ".pdf" suffix and is the record key.
	Stem string `json:"stem" yaml:"stem"`

	// Filename is the cached PDF filename (e.g. "Smith23.pdf").
	Filename string `json:"filename" yaml:"filename"`

	// Identifier is the "<year>/<number>" form of the source paper.
	Identifier string `json:"identifier" yaml:"identifier"`

	Title   string   `json:"title" yaml:"title"`
	Authors []string `json:"authors" yaml:"authors"`

	// PDFPath is the absolute path of the cached PDF.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// CachedAt is when the record was first written.
	CachedAt time.Time `json:"cached_at" yaml:"cached_at"`

	// FetchedAt is the last time metadata for this record was refreshed.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}
