package main

import (
	"fmt"

	"github.com/fwojciec/hcprofile"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	result, err := deps.Scraper.Scrape(deps.Ctx, urlList(c.URLs))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: Error scraping URLs: %s\n", hcprofile.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, result.Summary())
	if c.Show {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, result.Content)
	}
	return nil
}
