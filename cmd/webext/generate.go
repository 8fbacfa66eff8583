package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fwojciec/webext"
)

// Run executes the generate command.
func (c *GenerateCmd) Run(deps *Dependencies) error {
	rec, err := deps.Namespaces.FindNamespaceByName(deps.Ctx, c.Name)
	if err != nil {
		if webext.ErrorCode(err) == webext.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: namespace %q not found. Use 'webext list' to see stored namespaces.\n", c.Name)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webext.ErrorMessage(err))
		}
		return err
	}

	// Render fully before touching the output file.
	var buf bytes.Buffer
	if err := deps.Generator.Generate(&buf, rec.Namespace); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webext.ErrorMessage(err))
		return err
	}

	if c.Output == "" {
		_, err := buf.WriteTo(deps.Stdout)
		return err
	}

	if err := os.WriteFile(c.Output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s bindings to %s\n", rec.Name, c.Output)
	return nil
}
