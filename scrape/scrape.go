// Package scrape turns a list of URLs into raw text by fetching each page,
// selecting its content and converting it to text.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/hcprofile"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs fetched at once.
const DefaultConcurrency = 3

var _ hcprofile.Scraper = (*Scraper)(nil)

// Scraper implements hcprofile.Scraper on top of a fetch, extract and
// convert pipeline.
type Scraper struct {
	Fetcher   hcprofile.Fetcher
	Extractor hcprofile.Extractor
	Converter hcprofile.Converter

	// RateLimiter, if set, throttles requests per host.
	RateLimiter hcprofile.DomainLimiter

	// Concurrency limits parallel fetches. Defaults to DefaultConcurrency.
	Concurrency int

	// RetryDelays are waited between attempts. Nil uses DefaultRetryDelays;
	// an empty slice disables retries.
	RetryDelays []time.Duration

	// Logger, if set, receives retry messages.
	Logger *slog.Logger
}

// Scrape fetches all URLs and returns their text in request order.
// The first failure cancels the remaining fetches and is returned with the
// failing URL.
func (s *Scraper) Scrape(ctx context.Context, urls []string) (*hcprofile.ScrapeResult, error) {
	if len(urls) == 0 {
		return nil, hcprofile.Errorf(hcprofile.EINVALID, "Please enter at least one URL")
	}

	hosts := make([]string, len(urls))
	for i, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, hcprofile.Errorf(hcprofile.EINVALID, "invalid URL %q: must be an absolute http(s) URL", raw)
		}
		hosts[i] = u.Host
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	pages := make([]*hcprofile.Page, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range urls {
		g.Go(func() error {
			page, err := s.scrapeURL(gctx, u, hosts[i])
			if err != nil {
				return fmt.Errorf("%s: %w", u, err)
			}
			pages[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return hcprofile.NewScrapeResult(pages), nil
}

// scrapeURL fetches, extracts and converts a single page.
func (s *Scraper) scrapeURL(ctx context.Context, rawURL, host string) (*hcprofile.Page, error) {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, host); err != nil {
			return nil, err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	var logf LogFunc
	if s.Logger != nil {
		logf = func(format string, args ...any) {
			s.Logger.Warn(fmt.Sprintf(format, args...))
		}
	}

	html, err := FetchWithRetry(ctx, rawURL, s.Fetcher.Fetch, logf, delays)
	if err != nil {
		return nil, err
	}

	extracted, err := s.Extractor.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	var text string
	if strings.TrimSpace(extracted.ContentHTML) != "" {
		if text, err = s.Converter.Convert(extracted.ContentHTML); err != nil {
			return nil, fmt.Errorf("convert: %w", err)
		}
	}

	return &hcprofile.Page{
		URL:     rawURL,
		Title:   extracted.Title,
		Content: text,
	}, nil
}
