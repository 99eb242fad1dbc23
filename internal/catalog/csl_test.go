// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/paper/pkg/types"
)

func TestToCSLItem(t *testing.T) {
	r := types.CatalogRecord{
		Stem:       "SmiJon23",
		Filename:   "SmiJon23.pdf",
		Identifier: "2023/1234",
		Title:      "A Paper",
		Authors:    []string{"Alice Smith", "Satoshi"},
	}

	item := toCSLItem(r)

	if item.ID != "SmiJon23" {
		t.Errorf("ID = %q, want %q", item.ID, "SmiJon23")
	}
	if item.URL != "https://eprint.iacr.org/2023/1234" {
		t.Errorf("URL = %q", item.URL)
	}
	if item.Issued == nil || item.Issued.DateParts[0][0] != 2023 {
		t.Errorf("Issued = %+v, want year 2023", item.Issued)
	}
	if len(item.Author) != 2 {
		t.Fatalf("len(Author) = %d, want 2", len(item.Author))
	}
	if item.Author[0].Family != "Smith" || item.Author[0].Given != "Alice" {
		t.Errorf("Author[0] = %+v", item.Author[0])
	}
	if item.Author[1].Literal != "Satoshi" {
		t.Errorf("Author[1] = %+v, want literal Satoshi", item.Author[1])
	}
}

func TestWriteCSL(t *testing.T) {
	var buf bytes.Buffer
	records := []types.CatalogRecord{{Stem: "Smith23", Identifier: "2023/1", Title: "A Paper"}}
	if err := WriteCSL(&buf, records); err != nil {
		t.Fatalf("WriteCSL: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"id: Smith23", "type: report", "publisher: Cryptology ePrint Archive", "date-parts:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
