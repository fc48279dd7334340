package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mgpai22/subcut/internal/rewrite"
	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [subtitle_file]",
	Short: "Rewrite cue text with an AI model",
	Long: `Send the text of every cue to an LLM with an instruction and replace it
with the answer. Timing is never changed. Formatting tags and line breaks
are kept.

Cues are sent in batches, several batches at a time. The API key is read
from --api-key or from GEMINI_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY
depending on the provider.

Examples:
  subcut rewrite movie.srt --instruction "translate to Japanese" -o movie.ja.srt
  subcut rewrite movie.srt --instruction "fix spelling and punctuation" --provider anthropic
  subcut rewrite movie.srt --instruction "simplify for language learners" --provider openai --model gpt-5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRewrite,
}

func init() {
	rootCmd.AddCommand(rewriteCmd)

	rewriteCmd.Flags().
		String("instruction", "", "What to do with each cue's text (required)")
	rewriteCmd.Flags().
		StringP("api-key", "k", "", "API key (or set GEMINI_API_KEY/OPENAI_API_KEY/ANTHROPIC_API_KEY env var)")
	rewriteCmd.Flags().
		String("model", "", "Model to use (provider-specific, uses sensible defaults)")
	rewriteCmd.Flags().
		String("provider", "", "LLM provider: gemini, openai, anthropic (default gemini)")
	rewriteCmd.Flags().
		Int("concurrency", 0, "Number of parallel requests (default 3)")
	rewriteCmd.Flags().
		Int("batch-size", 0, "Number of cues per API request (default 50)")

	_ = rewriteCmd.MarkFlagRequired("instruction")
}

func runRewrite(cmd *cobra.Command, args []string) error {
	path := inputArg(args)

	instruction, _ := cmd.Flags().GetString("instruction")
	apiKey, _ := cmd.Flags().GetString("api-key")

	settings := cfg.Rewrite
	if cmd.Flags().Changed("provider") {
		settings.Provider, _ = cmd.Flags().GetString("provider")
	}
	if cmd.Flags().Changed("model") {
		settings.Model, _ = cmd.Flags().GetString("model")
	}
	if cmd.Flags().Changed("concurrency") {
		settings.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	}
	if cmd.Flags().Changed("batch-size") {
		settings.BatchSize, _ = cmd.Flags().GetInt("batch-size")
	}

	if settings.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", settings.Concurrency)
	}
	if settings.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be positive, got %d", settings.BatchSize)
	}

	provider := rewrite.Provider(settings.Provider)
	if apiKey == "" {
		apiKey = os.Getenv(provider.APIKeyEnv())
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key flag or set %s environment variable",
			provider.APIKeyEnv(),
		)
	}

	return runPipeline(cmd, []string{path}, func(ctx context.Context) error {
		blocks, format, err := readBlocks(cmd, path)
		if err != nil {
			return err
		}
		if len(blocks) == 0 {
			return fmt.Errorf("subtitle file contains no cues")
		}

		rewriter, err := rewrite.Factory(ctx, provider, apiKey, rewrite.Options{
			Instruction: instruction,
			Model:       settings.Model,
			BatchSize:   settings.BatchSize,
		})
		if err != nil {
			return fmt.Errorf("failed to create rewriter: %w", err)
		}

		texts := make([]string, len(blocks))
		for i, b := range blocks {
			texts[i] = b.Content
		}

		logger.Infow("Rewriting subtitles",
			"items", len(texts),
			"provider", provider,
			"model", settings.Model,
			"concurrency", settings.Concurrency,
			"batch_size", settings.BatchSize,
		)

		rewritten, err := rewrite.RewriteAll(ctx, rewriter, texts, settings.Concurrency)
		if err != nil {
			return fmt.Errorf("rewrite failed: %w", err)
		}

		logger.Infow("Rewrite complete", "results", len(rewritten))

		next := 0
		seq := timeline.Process(timeline.FromSlice(blocks), func(string) string {
			text := rewritten[next]
			next++
			return text
		})
		return writeTimeline(cmd, seq, format)
	})
}
