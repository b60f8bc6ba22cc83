// Package goquery selects and flattens page content using PuerkitoBio/goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/hcprofile"
)

// invisibleSelector matches elements whose content is never shown as text.
const invisibleSelector = "script, style, noscript, template, svg, iframe, object, canvas"

// Ensure PageExtractor implements hcprofile.Extractor at compile time.
var _ hcprofile.Extractor = (*PageExtractor)(nil)

// PageExtractor keeps the whole visible page body. Unlike the
// main-content extractors it does not drop sidebars or footers, where
// practice websites often put credentials and testimonials.
type PageExtractor struct{}

// NewPageExtractor creates a new PageExtractor.
func NewPageExtractor() *PageExtractor {
	return &PageExtractor{}
}

// Extract returns the page title and the body HTML with invisible elements removed.
func (e *PageExtractor) Extract(rawHTML string) (*hcprofile.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, hcprofile.Errorf(hcprofile.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, hcprofile.Errorf(hcprofile.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("head title").First().Text())
	if title == "" {
		og, _ := doc.Find(`meta[property="og:title"]`).Attr("content")
		title = strings.TrimSpace(og)
	}

	doc.Find(invisibleSelector).Remove()

	content, err := goquery.OuterHtml(doc.Find("body").First())
	if err != nil {
		return nil, err
	}

	return &hcprofile.ExtractResult{
		Title:       title,
		ContentHTML: content,
	}, nil
}
