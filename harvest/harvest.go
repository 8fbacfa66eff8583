// Package harvest orchestrates schema extraction across every reference
// page listed by the API index: fetching, parsing and storing each page
// while isolating per-page failures.
package harvest

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/fwojciec/webext"
	"github.com/fwojciec/webext/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed at once when
// Harvester.Concurrency is not set.
const DefaultConcurrency = 4

// dedupeFalsePositiveRate keeps the chance of dropping a distinct page
// negligible for index-sized inputs.
const dedupeFalsePositiveRate = 1e-6

// Harvester extracts namespaces from reference pages.
type Harvester struct {
	Index       webext.IndexParser
	Fetcher     webext.Fetcher
	Parser      webext.Parser
	Writer      webext.NamespaceWriter
	RateLimiter webext.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration

	// RetryLog, if set, is called before each fetch retry.
	RetryLog LogFunc
}

// Filter selects pages by namespace name. A page is kept if it matches any
// Include pattern (or there are none) and no Exclude pattern.
type Filter struct {
	Include []*regexp.Regexp
	Exclude []*regexp.Regexp
}

// NewFilter compiles include and exclude patterns.
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, webext.Errorf(webext.EINVALID, "invalid include pattern %q: %v", p, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, webext.Errorf(webext.EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// Match reports whether the namespace name passes the filter. A nil filter
// matches everything.
func (f *Filter) Match(name string) bool {
	if f == nil {
		return true
	}
	for _, re := range f.Exclude {
		if re.MatchString(name) {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, re := range f.Include {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Result holds the outcome of a harvest.
type Result struct {
	Saved   int
	Failed  int
	Skipped int
	Bytes   int
}

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Page      webext.APIPage
	Skipped   int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// Pages fetches the index page and returns the reference pages it lists,
// without duplicate URLs, restricted to names passing filter.
func (h *Harvester) Pages(ctx context.Context, indexURL string, filter *Filter) ([]webext.APIPage, error) {
	html, err := h.fetch(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	all, err := h.Index.ParseIndex(html, indexURL)
	if err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}

	seen := bloom.NewFilter(uint(max(len(all), 1)), dedupeFalsePositiveRate)
	var pages []webext.APIPage
	for _, p := range all {
		if seen.AddNew(p.URL) && filter.Match(p.Name) {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

// Harvest extracts every page listed by the index at indexURL and saves the
// resulting records in index order. A page that fails to fetch, parse or
// save is counted in Result.Failed and reported through progress; it never
// stops the run. Only a failure to read the index returns an error.
func (h *Harvester) Harvest(ctx context.Context, indexURL string, filter *Filter, progress ProgressFunc) (*Result, error) {
	pages, err := h.Pages(ctx, indexURL, filter)
	if err != nil {
		return nil, err
	}
	return h.HarvestPages(ctx, pages, progress), nil
}

// pageResult holds the outcome of processing a single page.
type pageResult struct {
	position int
	rec      *webext.NamespaceRecord
	bytes    int
	err      error
}

// HarvestPages extracts and saves the given pages.
func (h *Harvester) HarvestPages(ctx context.Context, pages []webext.APIPage, progress ProgressFunc) *Result {
	notify := func(ev ProgressEvent) {
		if progress != nil {
			progress(ev)
		}
	}

	concurrency := h.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(pages)
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan pageResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, page := range pages {
			g.Go(func() error {
				rec, n, err := h.extract(gctx, page)
				resultCh <- pageResult{position: i, rec: rec, bytes: n, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]pageResult, total)
	for r := range resultCh {
		results[r.position] = r
		ev := ProgressEvent{
			Completed: int(completed.Add(1)),
			Total:     total,
			Page:      pages[r.position],
			Error:     r.err,
		}
		if r.err != nil {
			ev.Type = ProgressFailed
		} else {
			ev.Type = ProgressCompleted
			ev.Skipped = len(r.rec.Skipped)
		}
		notify(ev)
	}

	var res Result
	for i, r := range results {
		if r.err != nil {
			res.Failed++
			continue
		}
		if err := h.Writer.SaveNamespace(ctx, r.rec); err != nil {
			res.Failed++
			notify(ProgressEvent{Type: ProgressFailed, Total: total, Page: pages[i], Error: fmt.Errorf("save: %w", err)})
			continue
		}
		res.Saved++
		res.Skipped += len(r.rec.Skipped)
		res.Bytes += r.bytes
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return &res
}

// Extract fetches and parses a single page without saving it.
func (h *Harvester) Extract(ctx context.Context, page webext.APIPage) (*webext.NamespaceRecord, error) {
	rec, _, err := h.extract(ctx, page)
	return rec, err
}

func (h *Harvester) extract(ctx context.Context, page webext.APIPage) (*webext.NamespaceRecord, int, error) {
	html, err := h.fetch(ctx, page.URL)
	if err != nil {
		return nil, 0, err
	}

	ext, err := h.Parser.ParseNamespace(page.Name, html)
	if err != nil {
		return nil, 0, err
	}

	rec := &webext.NamespaceRecord{
		Name:        page.Name,
		SourceURL:   page.URL,
		ContentHash: ComputeHash(html),
		Namespace:   ext.Namespace,
		ExtractedAt: time.Now().UTC(),
	}
	for _, s := range ext.Skipped {
		rec.Skipped = append(rec.Skipped, fmt.Sprintf("%s[%d]: %s", s.Section, s.Index, webext.ErrorMessage(s.Err)))
	}
	return rec, len(html), nil
}

// fetch waits for the page's domain, then fetches with retry.
func (h *Harvester) fetch(ctx context.Context, rawURL string) (string, error) {
	if h.RateLimiter != nil {
		if err := h.RateLimiter.Wait(ctx, rawURL); err != nil {
			return "", err
		}
	}

	delays := h.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, rawURL, h.Fetcher.Fetch, h.RetryLog, delays)
}

// PageFromURL builds an APIPage for a single reference page URL, naming
// the namespace after the last path segment.
func PageFromURL(rawURL string) (webext.APIPage, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return webext.APIPage{}, webext.Errorf(webext.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return webext.APIPage{}, webext.Errorf(webext.EINVALID, "URL %q has no page name", rawURL)
	}
	u.Fragment = ""
	return webext.APIPage{Name: name, URL: u.String()}, nil
}
