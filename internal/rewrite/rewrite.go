// Package rewrite edits cue text through an LLM provider.
package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

const DefaultBatchSize = 50

// single cue text sent for rewriting
type Item struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// rewritten cue text
type Result struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Rewriter rewrites one batch of items in a single request.
type Rewriter interface {
	Rewrite(ctx context.Context, items []Item) ([]Result, error)
	// BatchSize is the largest batch one request should carry.
	BatchSize() int
}

// LLM service provider
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

type Options struct {
	// Instruction says what to do with each text, e.g. "translate to French".
	Instruction string
	Model       string
	BatchSize   int // items per API request (default 50)
}

func (o Options) batchSize() int {
	if o.BatchSize > 0 {
		return o.BatchSize
	}
	return DefaultBatchSize
}

// creates Rewriter based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Rewriter, error) {
	if strings.TrimSpace(opts.Instruction) == "" {
		return nil, fmt.Errorf("instruction is required")
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiRewriter(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAIRewriter(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicRewriter(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported rewrite provider: %s", provider)
	}
}

// APIKeyEnv names the environment variable holding the provider's key.
func (p Provider) APIKeyEnv() string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}

// BuildPrompt creates the rewrite prompt for LLM providers
func BuildPrompt(opts Options, items []Item) string {
	var sb strings.Builder

	sb.WriteString("Rewrite each of the following subtitle texts.\n\n")
	sb.WriteString(fmt.Sprintf("Task: %s\n\n", opts.Instruction))

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString("1. Apply the task to each text on its own.\n")
	sb.WriteString(
		"2. Keep any formatting tags (like {\\pos}, {\\an}, <i>, etc.) unchanged.\n",
	)
	sb.WriteString("3. Preserve line breaks in the same positions.\n")
	sb.WriteString("4. Return ONLY a JSON array with the same structure.\n")
	sb.WriteString("5. Each object must have 'index' and 'text' fields.\n")
	sb.WriteString(
		"6. The 'index' values must match the input indices exactly.\n",
	)
	sb.WriteString("7. Do not add any explanation or markdown formatting.\n\n")

	sb.WriteString("Input JSON:\n")

	inputJSON, _ := sonic.MarshalIndent(items, "", "  ")
	sb.Write(inputJSON)

	sb.WriteString("\n\nOutput the rewritten JSON array only:")

	return sb.String()
}
