// Package trafilatura extracts the main content of a page with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/hcprofile"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements hcprofile.Extractor at compile time.
var _ hcprofile.Extractor = (*Extractor)(nil)

// Extractor keeps only the main content of a page. When trafilatura finds
// no content and Fallback is set, the page is handed to Fallback instead.
type Extractor struct {
	Fallback hcprofile.Extractor
}

// NewExtractor creates a new Extractor without a fallback.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*hcprofile.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, hcprofile.Errorf(hcprofile.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		if e.Fallback != nil {
			return e.Fallback.Extract(rawHTML)
		}
		return nil, err
	}

	var content string
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		content = buf.String()
	}

	if strings.TrimSpace(result.ContentText) == "" && e.Fallback != nil {
		return e.Fallback.Extract(rawHTML)
	}

	return &hcprofile.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: content,
	}, nil
}
