package hcprofile

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Page is the text scraped from a single URL.
type Page struct {
	URL     string
	Title   string
	Content string
}

// PageSeparator joins the content of consecutive pages in the raw content.
const PageSeparator = "\n\n"

// ScrapeResult is the outcome of scraping a list of URLs.
type ScrapeResult struct {
	// Pages holds one entry per requested URL, in request order.
	Pages []*Page

	// Content is the raw content: every page's text joined by PageSeparator.
	Content string
}

// NewScrapeResult builds a ScrapeResult and its combined raw content from pages.
func NewScrapeResult(pages []*Page) *ScrapeResult {
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, p.Content)
	}
	return &ScrapeResult{
		Pages:   pages,
		Content: strings.Join(parts, PageSeparator),
	}
}

// Characters returns the length of the raw content in characters.
func (r *ScrapeResult) Characters() int {
	return utf8.RuneCountInString(r.Content)
}

// Summary describes the result for display.
func (r *ScrapeResult) Summary() string {
	return fmt.Sprintf("Scraped %d pages with %d characters!", len(r.Pages), r.Characters())
}

// Scraper fetches a list of URLs and combines their text.
type Scraper interface {
	// Scrape fetches every URL and returns their combined text.
	// A failure on any URL fails the whole scrape.
	Scrape(ctx context.Context, urls []string) (*ScrapeResult, error)
}

// ParseURLList splits comma-separated input into trimmed, non-empty URLs.
func ParseURLList(input string) []string {
	var urls []string
	for _, u := range strings.Split(input, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
