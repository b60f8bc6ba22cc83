package mock

import "github.com/fwojciec/hcprofile"

var _ hcprofile.Converter = (*Converter)(nil)

// Converter is a mock implementation of hcprofile.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
