// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper/pkg/types"
)

// CSLItem is a bibliographic entry in CSL-YAML form, readable by Pandoc and
// reference managers.
type CSLItem struct {
	ID        string    `yaml:"id"`
	Type      string    `yaml:"type"`
	Title     string    `yaml:"title"`
	Author    []CSLName `yaml:"author,omitempty"`
	Issued    *CSLDate  `yaml:"issued,omitempty"`
	Number    string    `yaml:"number,omitempty"`
	Publisher string    `yaml:"publisher,omitempty"`
	URL       string    `yaml:"URL,omitempty"`
}

// CSLName is a person's name in CSL form.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate is a date in CSL date-parts form.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

const eprintPublisher = "Cryptology ePrint Archive"

// WriteCSL writes records as a CSL-YAML list keyed by filename stem.
func WriteCSL(w io.Writer, records []types.CatalogRecord) error {
	items := make([]CSLItem, len(records))
	for i, r := range records {
		items[i] = toCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

func toCSLItem(r types.CatalogRecord) CSLItem {
	item := CSLItem{
		ID:        r.Stem,
		Type:      "report",
		Title:     r.Title,
		Number:    r.Identifier,
		Publisher: eprintPublisher,
	}
	if r.Identifier != "" {
		item.URL = "https://eprint.iacr.org/" + r.Identifier
	}
	for _, a := range r.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	if year, _, ok := strings.Cut(r.Identifier, "/"); ok {
		if y, err := strconv.Atoi(year); err == nil {
			item.Issued = &CSLDate{DateParts: [][]int{{y}}}
		}
	}
	return item
}

// parseAuthorName splits on the last space: the final token is the family
// name. Single-token names go in the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  strings.TrimSpace(name[:idx]),
		Family: name[idx+1:],
	}
}
