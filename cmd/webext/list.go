package main

import (
	"fmt"

	"github.com/fwojciec/webext"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	recs, err := deps.Namespaces.FindNamespaces(deps.Ctx, webext.NamespaceFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webext.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No namespaces found. Use 'webext harvest' or 'webext parse --save' to extract some.")
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d types  %d properties  %d methods",
			r.Name, r.SourceURL, len(r.Namespace.Types), len(r.Namespace.Properties), len(r.Namespace.Methods))
		if len(r.Skipped) > 0 {
			fmt.Fprintf(deps.Stdout, "  %d skipped", len(r.Skipped))
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}
