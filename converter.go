package hcprofile

// Converter turns content HTML into the text sent to the language model.
type Converter interface {
	// Convert transforms HTML (e.g., from an Extractor) into text.
	Convert(html string) (string, error)
}
