package mock

import "github.com/fwojciec/hcprofile"

var _ hcprofile.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of hcprofile.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*hcprofile.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*hcprofile.ExtractResult, error) {
	return e.ExtractFn(html)
}
