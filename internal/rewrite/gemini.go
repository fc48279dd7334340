package rewrite

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// implements Rewriter using Google Gemini
type GeminiRewriter struct {
	client  *genai.Client
	model   string
	options Options
}

func NewGeminiRewriter(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiRewriter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiRewriter{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (r *GeminiRewriter) BatchSize() int {
	return r.options.batchSize()
}

func (r *GeminiRewriter) Rewrite(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}

	parts := []*genai.Part{
		genai.NewPartFromText(BuildPrompt(r.options, items)),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := r.client.Models.GenerateContent(ctx, r.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("rewrite failed: %w", err)
	}

	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var responseText string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			responseText += part.Text
		}
		if responseText != "" {
			break
		}
	}

	return parseResults(responseText, len(items))
}
