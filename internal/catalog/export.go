// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper/pkg/types"
)

// Format selects how records are rendered by Write.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCSL  Format = "csl"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatYAML, FormatJSON, FormatCSL:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, yaml, json, or csl)", s)
	}
}

// Write renders records to w in the given format.
func Write(w io.Writer, records []types.CatalogRecord, format Format) error {
	switch format {
	case FormatCSL:
		return WriteCSL(w, records)
	case FormatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatJSON:
		if records == nil {
			records = []types.CatalogRecord{}
		}
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		for _, r := range records {
			if _, err := fmt.Fprintf(w, "%-16s %-10s %s\n", r.Filename, r.Identifier, r.Title); err != nil {
				return err
			}
		}
		return nil
	}
}
