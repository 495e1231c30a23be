// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes resolved records as YAML, JSON, or CSL-YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doi-fetch/pkg/types"
)

// Write renders records to w in the given format.
func Write(w io.Writer, format types.OutputFormat, records []types.Record) error {
	switch format {
	case types.OutputYAML, "":
		return writeYAML(w, records)
	case types.OutputJSON:
		return writeJSON(w, records)
	case types.OutputCSL:
		items := make([]CSLItem, len(records))
		for i, rec := range records {
			items[i] = ToCSL(rec)
		}
		return writeYAML(w, items)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
