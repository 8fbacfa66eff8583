package main

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/webext"
	"go.yaml.in/yaml/v3"
)

// encode writes v to w as indented JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return webext.Errorf(webext.EINVALID, "unknown output format %q", format)
}
