package cli

import (
	"context"
	"fmt"

	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe [subtitle_file]",
	Short: "Remove duplicate cues",
	Long: `Remove cues with the same text whose start times are within the
tolerance of each other. Chains of near-duplicates collapse to the first
cue. A tolerance of 0 matches on text alone. The default tolerance comes
from dedupe.tolerance in the config file.

Examples:
  subcut dedupe movie.srt
  subcut dedupe movie.srt -t 1s -o clean.srt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDedupe,
}

func init() {
	rootCmd.AddCommand(dedupeCmd)

	dedupeCmd.Flags().
		StringP("tolerance", "t", "", "Largest start difference still treated as a duplicate, 0 for text only (default 5s)")
}

func runDedupe(cmd *cobra.Command, args []string) error {
	path := inputArg(args)

	tolerance := cfg.Dedupe.Tolerance
	if cmd.Flags().Changed("tolerance") {
		var err error
		if tolerance, err = timeFlag(cmd, "tolerance"); err != nil {
			return err
		}
	}
	if tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %s", tolerance)
	}

	return runPipeline(cmd, []string{path}, func(ctx context.Context) error {
		blocks, format, err := readBlocks(cmd, path)
		if err != nil {
			return err
		}

		deduped := timeline.Dedupe(blocks, tolerance)
		logger.Infow("Removed duplicate cues",
			"before", len(blocks),
			"after", len(deduped),
			"tolerance", tolerance,
		)

		return writeTimeline(cmd, timeline.FromSlice(deduped), format)
	})
}
