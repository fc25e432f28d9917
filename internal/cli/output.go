// Copyright (c) 2026 Odrzavanje. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// field is one labelled value of command output.
type field struct {
	key   string
	value any
}

// printFields writes fields as aligned "key: value" lines, or as one JSON object.
func printFields(w io.Writer, format string, fields ...field) error {
	switch format {
	case "json":
		object := make(map[string]any, len(fields))
		for _, f := range fields {
			object[f.key] = f.value
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(object)
	case "text", "":
		for _, f := range fields {
			if _, err := fmt.Fprintf(w, "%-12s %v\n", f.key+":", f.value); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
