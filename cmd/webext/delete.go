package main

import (
	"fmt"

	"github.com/fwojciec/webext"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return webext.Errorf(webext.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Namespaces.DeleteNamespace(deps.Ctx, c.Name); err != nil {
		if webext.ErrorCode(err) == webext.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: namespace %q not found. Use 'webext list' to see stored namespaces.\n", c.Name)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webext.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted namespace %q\n", c.Name)
	return nil
}
