// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/paper/pkg/types"
)

const (
	bibtexSelector  = "pre#bibtex"
	authorSeparator = " and "
	abstractStyle   = "white-space: pre-wrap"
)

// Extract pulls title, authors, and abstract out of an ePrint landing page.
// The BibTeX block is required; the abstract is optional.
func Extract(markup string) (types.Metadata, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return types.Metadata{}, fmt.Errorf("%w: parsing page: %v", ErrMetadataNotFound, err)
	}

	block := doc.Find(bibtexSelector).First()
	if block.Length() == 0 {
		return types.Metadata{}, fmt.Errorf("%w: no BibTeX block on page", ErrMetadataNotFound)
	}

	// Line 0 is the entry header, line 1 the authors, line 2 the title.
	lines := strings.Split(strings.TrimSpace(block.Text()), "\n")

	authorField, ok := bibField(lines, 1, "author")
	if !ok {
		return types.Metadata{}, fmt.Errorf("%w: missing author line", ErrMalformedMetadata)
	}
	title, ok := bibField(lines, 2, "title")
	if !ok {
		return types.Metadata{}, fmt.Errorf("%w: missing title line", ErrMalformedMetadata)
	}

	var authors []string
	for _, a := range strings.Split(authorField, authorSeparator) {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}

	return types.Metadata{
		Title:    title,
		Authors:  authors,
		Abstract: extractAbstract(doc),
	}, nil
}

// bibField parses lines[i] as `name = {value},` and returns value.
func bibField(lines []string, i int, name string) (string, bool) {
	if i >= len(lines) {
		return "", false
	}
	line := strings.TrimSpace(lines[i])
	prefix := name + " = {"
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	value := strings.TrimPrefix(line, prefix)
	value = strings.TrimSuffix(value, ",")
	value = strings.TrimSuffix(value, "}")
	return strings.TrimSpace(value), true
}

func extractAbstract(doc *goquery.Document) string {
	var abstract string
	doc.Find("p[style]").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		style, _ := p.Attr("style")
		if strings.Contains(style, abstractStyle) {
			abstract = strings.TrimSpace(p.Text())
			return false
		}
		return true
	})
	return abstract
}
