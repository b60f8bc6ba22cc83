// Package extract turns scraped page text into a Profile by prompting a
// language model.
package extract

import (
	"context"
	"strings"

	"github.com/fwojciec/hcprofile"
)

// Ensure Service implements hcprofile.ProfileExtractor at compile time.
var _ hcprofile.ProfileExtractor = (*Service)(nil)

// Provider describes a language model backend.
type Provider struct {
	// Name is shown to the user, e.g. "OpenAI".
	Name string

	// SecretName is the secrets store key holding the API key.
	SecretName string

	// NewCompleter builds a completer authenticated with apiKey.
	NewCompleter func(ctx context.Context, apiKey string) (hcprofile.Completer, error)
}

// Service extracts profiles. The API key is looked up on every call so a
// key added to the secrets file takes effect without a restart.
type Service struct {
	Secrets  hcprofile.SecretStore
	Provider Provider

	// MaxChars limits the raw content sent to the model. Zero selects
	// hcprofile.MaxPromptChars.
	MaxChars int
}

// NewService creates a new Service.
func NewService(secrets hcprofile.SecretStore, provider Provider) *Service {
	return &Service{Secrets: secrets, Provider: provider}
}

// ExtractProfile prompts the model with rawContent and decodes its reply.
func (s *Service) ExtractProfile(ctx context.Context, rawContent string) (*hcprofile.Extraction, error) {
	if strings.TrimSpace(rawContent) == "" {
		return nil, hcprofile.Errorf(hcprofile.EINVALID, "Please scrape URLs first!")
	}

	apiKey, err := s.Secrets.Secret(ctx, s.Provider.SecretName)
	if hcprofile.ErrorCode(err) == hcprofile.ENOTFOUND {
		return nil, hcprofile.Errorf(hcprofile.EUNAUTHORIZED, "%s API key not found in secrets!", s.Provider.Name)
	} else if err != nil {
		return nil, err
	}

	completer, err := s.Provider.NewCompleter(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	response, err := completer.Complete(ctx, hcprofile.BuildPrompt(rawContent, s.MaxChars))
	if err != nil {
		return nil, err
	}

	profile, err := hcprofile.ParseResponse(response)
	if err != nil {
		return nil, err
	}
	return &hcprofile.Extraction{Profile: profile, Response: response}, nil
}
