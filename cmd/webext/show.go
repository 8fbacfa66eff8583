package main

import (
	"fmt"

	"github.com/fwojciec/webext"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Namespaces.FindNamespaceByName(deps.Ctx, c.Name)
	if err != nil {
		if webext.ErrorCode(err) == webext.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: namespace %q not found. Use 'webext list' to see stored namespaces.\n", c.Name)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webext.ErrorMessage(err))
		}
		return err
	}

	return encode(deps.Stdout, c.Format, rec)
}
