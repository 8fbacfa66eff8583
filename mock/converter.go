package mock

import "github.com/fwojciec/webext"

var _ webext.Converter = (*Converter)(nil)

// Converter is a mock implementation of webext.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
