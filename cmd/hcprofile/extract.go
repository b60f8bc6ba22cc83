package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/hcprofile"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	result, err := deps.Scraper.Scrape(deps.Ctx, urlList(c.URLs))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: Error scraping URLs: %s\n", hcprofile.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stderr, result.Summary())

	x, err := deps.ProfileExtractor.ExtractProfile(deps.Ctx, result.Content)
	if err != nil {
		var perr *hcprofile.ParseError
		switch {
		case errors.As(err, &perr):
			fmt.Fprintf(deps.Stderr, "error: Parsing error: %s\n", perr.Err)
			fmt.Fprintf(deps.Stderr, "Raw response:\n%s\n", perr.Raw)
		case hcprofile.ErrorCode(err) == hcprofile.EINVALID, hcprofile.ErrorCode(err) == hcprofile.EUNAUTHORIZED:
			fmt.Fprintf(deps.Stderr, "error: %s\n", hcprofile.ErrorMessage(err))
		default:
			fmt.Fprintf(deps.Stderr, "error: Error extracting information: %s\n", hcprofile.ErrorMessage(err))
		}
		return err
	}

	if c.JSON {
		data, err := x.Profile.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(data))
		return nil
	}

	doc := hcprofile.FormatProfile(x.Profile)
	if c.Output == "" {
		fmt.Fprint(deps.Stdout, doc)
		return nil
	}

	path, err := deps.NewWriter(c.Output).WriteDocument(deps.Ctx, hcprofile.DocumentFileName, doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", hcprofile.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
	return nil
}
