// Package openai implements hcprofile.Completer with the OpenAI chat
// completions API.
package openai

import (
	"context"
	"math"

	"github.com/fwojciec/hcprofile"
	goopenai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4"

// SecretName is the secrets store key holding the API key.
const SecretName = "openai_api_key"

// Ensure Completer implements hcprofile.Completer at compile time.
var _ hcprofile.Completer = (*Completer)(nil)

// NewClient creates an API client. An empty baseURL uses the public endpoint.
func NewClient(apiKey, baseURL string) *goopenai.Client {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return goopenai.NewClientWithConfig(cfg)
}

// Completer sends a single user message to a chat model.
type Completer struct {
	client *goopenai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *goopenai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Complete returns the content of the first choice.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", hcprofile.Errorf(hcprofile.EINVALID, "prompt required")
	}

	resp, err := c.client.CreateChatCompletion(ctx, BuildRequest(c.model, prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", hcprofile.Errorf(hcprofile.EINTERNAL, "openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// BuildRequest returns a deterministic chat request for prompt.
func BuildRequest(model, prompt string) goopenai.ChatCompletionRequest {
	return goopenai.ChatCompletionRequest{
		Model: model,
		Messages: []goopenai.ChatCompletionMessage{{
			Role:    goopenai.ChatMessageRoleUser,
			Content: prompt,
		}},
		// A zero temperature is dropped by omitempty and the API default of
		// 1 applies, so send the smallest positive value instead.
		Temperature: math.SmallestNonzeroFloat32,
	}
}
