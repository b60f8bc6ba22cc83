// Package gemini implements hcprofile.Completer with Google Gemini.
package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/hcprofile"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// SecretName is the secrets store key holding the API key.
const SecretName = "gemini_api_key"

// Ensure Completer implements hcprofile.Completer at compile time.
var _ hcprofile.Completer = (*Completer)(nil)

// NewClient connects to the Gemini API. An empty baseURL uses the public
// endpoint.
func NewClient(ctx context.Context, apiKey, baseURL string) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client, nil
}

// Completer sends a single prompt to a Gemini model.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete returns the text of the model's answer to prompt.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", hcprofile.Errorf(hcprofile.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", hcprofile.Errorf(hcprofile.EINTERNAL, "gemini returned no candidates")
	}

	return result.Text(), nil
}

// BuildConfig returns deterministic generation settings that ask for a
// JSON response body.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}
