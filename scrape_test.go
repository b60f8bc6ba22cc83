package hcprofile_test

import (
	"testing"

	"github.com/fwojciec/hcprofile"
	"github.com/stretchr/testify/assert"
)

func TestParseURLList(t *testing.T) {
	t.Parallel()

	t.Run("splits and trims", func(t *testing.T) {
		t.Parallel()

		urls := hcprofile.ParseURLList(" https://a.example/about , https://b.example/faq")

		assert.Equal(t, []string{"https://a.example/about", "https://b.example/faq"}, urls)
	})

	t.Run("drops empty entries", func(t *testing.T) {
		t.Parallel()

		urls := hcprofile.ParseURLList("https://a.example,, ,https://b.example,")

		assert.Equal(t, []string{"https://a.example", "https://b.example"}, urls)
	})

	t.Run("returns nil for blank input", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, hcprofile.ParseURLList("  ,  "))
	})
}

func TestNewScrapeResult(t *testing.T) {
	t.Parallel()

	t.Run("joins pages with a blank line", func(t *testing.T) {
		t.Parallel()

		result := hcprofile.NewScrapeResult([]*hcprofile.Page{
			{URL: "https://a.example", Content: "About"},
			{URL: "https://b.example", Content: "FAQ"},
		})

		assert.Equal(t, "About\n\nFAQ", result.Content)
		assert.Equal(t, 10, result.Characters())
		assert.Equal(t, "Scraped 2 pages with 10 characters!", result.Summary())
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()

		result := hcprofile.NewScrapeResult([]*hcprofile.Page{{Content: "Café"}})

		assert.Equal(t, 4, result.Characters())
	})
}
