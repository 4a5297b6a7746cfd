package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// GeminiProvider implements Provider on top of the Gemini API.
//
// Every call is bounded by a per-request timeout and retried once after a
// short backoff on failure.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	backoff time.Duration
}

// NewGeminiProvider creates a provider for the given model. Credentials are
// resolved by the genai client from the environment (GEMINI_API_KEY or
// application-default credentials).
func NewGeminiProvider(ctx context.Context, model string, timeout, backoff time.Duration) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("NewGeminiProvider: create genai client: %w", err)
	}

	return &GeminiProvider{
		client:  client,
		model:   model,
		timeout: timeout,
		backoff: backoff,
	}, nil
}

// Complete sends the exchange to Gemini and returns the reply text.
func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	text, err := p.completeOnce(ctx, req)
	if err == nil {
		return text, nil
	}
	if ctx.Err() != nil {
		return "", err
	}

	// Single retry after a fixed backoff, abandoned if the caller goes away.
	select {
	case <-time.After(p.backoff):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return p.completeOnce(ctx, req)
}

func (p *GeminiProvider) completeOnce(ctx context.Context, req CompletionRequest) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.User}},
		},
	}
	if req.Assistant != "" {
		contents = append(contents, &genai.Content{
			Role:  "model",
			Parts: []*genai.Part{{Text: req.Assistant}},
		})
	}

	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.Temperature > 0 {
		cfg.Temperature = genai.Ptr(req.Temperature)
	}
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = req.MaxTokens
	}

	resp, err := p.client.Models.GenerateContent(callCtx, p.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response from model")
	}
	return text, nil
}
