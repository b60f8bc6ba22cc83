// Package slog decorates hcprofile services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/hcprofile"
)

// Ensure LoggingFetcher implements hcprofile.Fetcher.
var _ hcprofile.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   hcprofile.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next hcprofile.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingScraper implements hcprofile.Scraper.
var _ hcprofile.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging.
type LoggingScraper struct {
	next   hcprofile.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next hcprofile.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape logs the number of URLs and the size of the result.
func (s *LoggingScraper) Scrape(ctx context.Context, urls []string) (result *hcprofile.ScrapeResult, err error) {
	defer func(begin time.Time) {
		var pages, chars int
		if result != nil {
			pages, chars = len(result.Pages), result.Characters()
		}
		s.logger.Info("scrape",
			"urls", len(urls),
			"pages", pages,
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx, urls)
}

// Ensure LoggingCompleter implements hcprofile.Completer.
var _ hcprofile.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging. Prompt and response
// contents are not logged, only their sizes.
type LoggingCompleter struct {
	next   hcprofile.Completer
	model  string
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter.
func NewLoggingCompleter(next hcprofile.Completer, model string, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, model: model, logger: logger}
}

// Complete logs the model call and delegates to the wrapped completer.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string) (response string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("complete",
			"model", c.model,
			"prompt_chars", len([]rune(prompt)),
			"response_chars", len([]rune(response)),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, prompt)
}

// Ensure LoggingProfileExtractor implements hcprofile.ProfileExtractor.
var _ hcprofile.ProfileExtractor = (*LoggingProfileExtractor)(nil)

// LoggingProfileExtractor wraps a ProfileExtractor with logging.
type LoggingProfileExtractor struct {
	next   hcprofile.ProfileExtractor
	logger *slog.Logger
}

// NewLoggingProfileExtractor creates a new LoggingProfileExtractor.
func NewLoggingProfileExtractor(next hcprofile.ProfileExtractor, logger *slog.Logger) *LoggingProfileExtractor {
	return &LoggingProfileExtractor{next: next, logger: logger}
}

// ExtractProfile logs how many sections were found. Parse failures are
// logged at warn level with the size of the raw response.
func (e *LoggingProfileExtractor) ExtractProfile(ctx context.Context, rawContent string) (x *hcprofile.Extraction, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"content_chars", len([]rune(rawContent)),
			"duration", time.Since(begin),
		}
		if x != nil {
			attrs = append(attrs, "sections", countSections(x.Profile))
		}
		if perr, ok := err.(*hcprofile.ParseError); ok {
			e.logger.Warn("extract profile", append(attrs, "response_chars", len([]rune(perr.Raw)), "err", err)...)
			return
		}
		e.logger.Info("extract profile", append(attrs, "err", err)...)
	}(time.Now())
	return e.next.ExtractProfile(ctx, rawContent)
}

func countSections(p *hcprofile.Profile) int {
	var n int
	for _, f := range hcprofile.Fields {
		if p.Section(f.Key) != nil {
			n++
		}
	}
	return n
}
