package mock

import (
	"context"

	"github.com/fwojciec/hcprofile"
)

var _ hcprofile.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of hcprofile.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, urls []string) (*hcprofile.ScrapeResult, error)
}

func (s *Scraper) Scrape(ctx context.Context, urls []string) (*hcprofile.ScrapeResult, error) {
	return s.ScrapeFn(ctx, urls)
}

var _ hcprofile.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of hcprofile.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
