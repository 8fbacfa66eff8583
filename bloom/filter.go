// Package bloom provides page URL deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter is a set of page URLs with no false negatives and a bounded
// false positive rate.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n URLs at the given false positive
// rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a URL to the filter.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might be in the filter.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// AddNew adds url and reports whether it was absent before.
func (f *Filter) AddNew(url string) bool {
	return !f.f.TestAndAddString(url)
}
