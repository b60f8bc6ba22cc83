package hcprofile

import "context"

// Completer sends a prompt to a large language model and returns its reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Extraction is the outcome of a successful profile extraction.
type Extraction struct {
	Profile *Profile

	// Response is the unparsed model reply.
	Response string
}

// ProfileExtractor turns raw content into a Profile using a language model.
type ProfileExtractor interface {
	// ExtractProfile returns EINVALID if rawContent is empty and
	// EUNAUTHORIZED if no API key is configured. Undecodable replies are
	// returned as *ParseError.
	ExtractProfile(ctx context.Context, rawContent string) (*Extraction, error)
}

// SecretStore provides configuration secrets such as API keys.
type SecretStore interface {
	// Secret returns the named secret.
	// Returns ENOTFOUND if the secret is missing or empty.
	Secret(ctx context.Context, name string) (string, error)
}
