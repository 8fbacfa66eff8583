package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/webext"
	"github.com/fwojciec/webext/fs"
	"github.com/fwojciec/webext/harvest"
)

// Run executes the harvest command.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	filter, err := harvest.NewFilter(c.Include, c.Exclude)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webext.ErrorMessage(err))
		return err
	}

	h := deps.Harvester
	if c.Concurrency > 0 {
		h.Concurrency = c.Concurrency
	}

	var store *fs.FileStore
	if c.Out != "" {
		out := filepath.Clean(c.Out)
		store = fs.NewFileStore(filepath.Dir(out), filepath.Base(out))
		h.Writer = store
	}
	if h.Writer == nil {
		return webext.Errorf(webext.EINTERNAL, "no namespace writer configured")
	}

	progress := func(event harvest.ProgressEvent) {
		switch event.Type {
		case harvest.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d pages\n", event.Total)
		case harvest.ProgressCompleted:
			if event.Skipped > 0 {
				fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (%d skipped)\n", event.Completed, event.Total, event.Page.Name, event.Skipped)
			}
		case harvest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", harvest.TruncateURL(event.Page.URL, 60), webext.ErrorMessage(event.Error))
		case harvest.ProgressFinished:
			// Summary printed after harvest completes
		}
	}

	result, err := h.Harvest(deps.Ctx, c.URL, filter, progress)
	if err != nil {
		if store != nil {
			_ = store.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error harvesting: %v\n", err)
		return err
	}

	// Nothing is written to the temp directory when every page failed.
	if store != nil && result.Saved == 0 {
		_ = store.Abort()
	} else if store != nil {
		if err := store.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", webext.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d namespaces (%s), %d failed, %d children skipped\n",
		result.Saved, harvest.FormatBytes(result.Bytes), result.Failed, result.Skipped)
	return nil
}
