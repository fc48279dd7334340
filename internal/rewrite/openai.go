package rewrite

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// implements Rewriter using OpenAI Chat Completions
type OpenAIRewriter struct {
	client  openai.Client
	model   string
	options Options
}

func NewOpenAIRewriter(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAIRewriter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "gpt-5-mini"
	}

	return &OpenAIRewriter{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (r *OpenAIRewriter) BatchSize() int {
	return r.options.batchSize()
}

func (r *OpenAIRewriter) Rewrite(
	ctx context.Context,
	items []Item,
) ([]Result, error) {
	if len(items) == 0 {
		return []Result{}, nil
	}

	completion, err := r.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(BuildPrompt(r.options, items)),
			},
			Model: r.model,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("rewrite failed: %w", err)
	}

	if completion == nil || len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	return parseResults(completion.Choices[0].Message.Content, len(items))
}
