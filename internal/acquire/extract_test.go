// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"errors"
	"fmt"
	"testing"
)

// pageHTML renders a landing page shaped like eprint.iacr.org's.
func pageHTML(bibtex, abstract string) string {
	abs := ""
	if abstract != "" {
		abs = fmt.Sprintf(`<h5>Abstract</h5><p style="white-space: pre-wrap;">%s</p>`, abstract)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>ePrint</title></head>
<body>
<p style="color: gray;">Last updated</p>
%s
<h5>BibTeX</h5>
<pre id="bibtex">%s</pre>
</body></html>`, abs, bibtex)
}

const sampleBibtex = `@misc{cryptoeprint:2023/1234,
      author = {Alice Smith and Bob Jones and Carol Davis},
      title = {A Paper on Things},
      howpublished = {Cryptology {ePrint} Archive, Paper 2023/1234},
      year = {2023},
      url = {https://eprint.iacr.org/2023/1234}
}`

func TestExtract(t *testing.T) {
	meta, err := Extract(pageHTML(sampleBibtex, "\n  We study things &amp; stuff.\n"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.Title != "A Paper on Things" {
		t.Errorf("Title = %q, want %q", meta.Title, "A Paper on Things")
	}
	want := []string{"Alice Smith", "Bob Jones", "Carol Davis"}
	if len(meta.Authors) != len(want) {
		t.Fatalf("Authors = %q, want %q", meta.Authors, want)
	}
	for i := range want {
		if meta.Authors[i] != want[i] {
			t.Errorf("Authors[%d] = %q, want %q", i, meta.Authors[i], want[i])
		}
	}
	if meta.Abstract != "We study things & stuff." {
		t.Errorf("Abstract = %q", meta.Abstract)
	}
}

func TestExtractSingleAuthorNoAbstract(t *testing.T) {
	bib := "@misc{cryptoeprint:2023/1,\n  author = {Alice Smith},\n  title = {A Paper},\n}"
	meta, err := Extract(pageHTML(bib, ""))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(meta.Authors) != 1 || meta.Authors[0] != "Alice Smith" {
		t.Errorf("Authors = %q, want [Alice Smith]", meta.Authors)
	}
	if meta.Title != "A Paper" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Abstract != "" {
		t.Errorf("Abstract = %q, want empty", meta.Abstract)
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name    string
		markup  string
		wantErr error
	}{
		{"no bibtex block", "<html><body><p>Paper not found</p></body></html>", ErrMetadataNotFound},
		{"empty page", "", ErrMetadataNotFound},
		{"header only", pageHTML("@misc{cryptoeprint:2023/1,", ""), ErrMalformedMetadata},
		{"author line missing", pageHTML("@misc{x,\n  title = {T},\n  author = {A B},\n}", ""), ErrMalformedMetadata},
		{"title line missing", pageHTML("@misc{x,\n  author = {A B},\n}", ""), ErrMalformedMetadata},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.markup)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
