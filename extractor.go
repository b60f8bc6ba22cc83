package hcprofile

// ExtractResult holds the content selected from an HTML page.
type ExtractResult struct {
	// Title is the page title taken from metadata.
	Title string

	// ContentHTML is the selected content as HTML. Depending on the
	// implementation this is the whole visible page or only its main
	// article with navigation and footer removed.
	ContentHTML string
}

// Extractor selects the content of interest from an HTML page.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
