// Package htmltomarkdown renders page content as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/hcprofile"
)

// Ensure Converter implements hcprofile.Converter at compile time.
var _ hcprofile.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Links are reduced to their text and
// images are dropped unless WithLinks is given.
type Converter struct {
	conv      *converter.Converter
	keepLinks bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithLinks keeps link targets and images in the output.
func WithLinks() Option {
	return func(c *Converter) {
		c.keepLinks = true
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", hcprofile.Errorf(hcprofile.EINVALID, "empty HTML input")
	}

	if !c.keepLinks {
		stripped, err := stripLinks(rawHTML)
		if err != nil {
			return "", err
		}
		rawHTML = stripped
	}

	md, err := c.conv.ConvertString(rawHTML)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

// stripLinks replaces anchors with their contents and removes images.
func stripLinks(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", hcprofile.Errorf(hcprofile.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find("img, picture").Remove()
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		s.ReplaceWithSelection(s.Contents())
	})
	return doc.Html()
}
