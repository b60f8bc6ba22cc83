package mock

import (
	"context"

	"github.com/fwojciec/hcprofile"
)

var _ hcprofile.Completer = (*Completer)(nil)

// Completer is a mock implementation of hcprofile.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteFn(ctx, prompt)
}

var _ hcprofile.ProfileExtractor = (*ProfileExtractor)(nil)

// ProfileExtractor is a mock implementation of hcprofile.ProfileExtractor.
type ProfileExtractor struct {
	ExtractProfileFn func(ctx context.Context, rawContent string) (*hcprofile.Extraction, error)
}

func (e *ProfileExtractor) ExtractProfile(ctx context.Context, rawContent string) (*hcprofile.Extraction, error) {
	return e.ExtractProfileFn(ctx, rawContent)
}

var _ hcprofile.SecretStore = (*SecretStore)(nil)

// SecretStore is a mock implementation of hcprofile.SecretStore.
type SecretStore struct {
	SecretFn func(ctx context.Context, name string) (string, error)
}

func (s *SecretStore) Secret(ctx context.Context, name string) (string, error) {
	return s.SecretFn(ctx, name)
}
