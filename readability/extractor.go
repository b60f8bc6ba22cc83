// Package readability extracts article content with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/hcprofile"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements hcprofile.Extractor at compile time.
var _ hcprofile.Extractor = (*Extractor)(nil)

// Extractor keeps the readable article of a page. Pages that readability
// rejects go to Fallback when it is set.
type Extractor struct {
	Fallback hcprofile.Extractor
}

// NewExtractor creates a new Extractor without a fallback.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article content.
func (e *Extractor) Extract(rawHTML string) (*hcprofile.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, hcprofile.Errorf(hcprofile.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil || strings.TrimSpace(article.TextContent) == "" {
		if e.Fallback != nil {
			return e.Fallback.Extract(rawHTML)
		}
		if err != nil {
			return nil, err
		}
	}

	return &hcprofile.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
