package main

import (
	"fmt"

	"github.com/fwojciec/webext"
	"github.com/fwojciec/webext/harvest"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	page, err := harvest.PageFromURL(c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webext.ErrorMessage(err))
		return err
	}
	if c.Name != "" {
		page.Name = c.Name
	}

	rec, err := deps.Harvester.Extract(deps.Ctx, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webext.ErrorMessage(err))
		return err
	}

	if c.Save {
		if err := deps.Namespaces.SaveNamespace(deps.Ctx, rec); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webext.ErrorMessage(err))
			return err
		}
	}

	return encode(deps.Stdout, c.Format, rec)
}
