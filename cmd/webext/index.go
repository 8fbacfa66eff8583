package main

import (
	"fmt"

	"github.com/fwojciec/webext"
	"github.com/fwojciec/webext/harvest"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	filter, err := harvest.NewFilter(c.Include, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webext.ErrorMessage(err))
		return err
	}

	pages, err := deps.Harvester.Pages(deps.Ctx, c.URL, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webext.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintf(deps.Stdout, "No reference pages found at %s\n", c.URL)
		return nil
	}

	for _, p := range pages {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", p.Name, p.URL)
	}
	return nil
}
