package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// implements Rewriter using Anthropic Claude
type AnthropicRewriter struct {
	client  anthropic.Client
	model   anthropic.Model
	options Options
}

func NewAnthropicRewriter(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*AnthropicRewriter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeHaiku4_5
	}

	return &AnthropicRewriter{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (r *AnthropicRewriter) BatchSize() int {
	return r.options.batchSize()
}

func (r *AnthropicRewriter) Rewrite(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}

	message, err := r.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:     r.model,
			MaxTokens: 4096,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(BuildPrompt(r.options, items)),
				),
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("rewrite failed: %w", err)
	}

	if message == nil || len(message.Content) == 0 {
		return nil, fmt.Errorf("empty response from Anthropic")
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return parseResults(sb.String(), len(items))
}
