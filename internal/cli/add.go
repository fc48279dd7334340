package cli

import (
	"fmt"
	"iter"

	"github.com/mgpai22/subcut/internal/subtitle"
	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [subtitle_file]",
	Short: "Insert a new cue",
	Long: `Insert a cue with the given text at its place in the timeline.

With --adjust every cue after the new one is pushed back by its duration,
making room instead of overlapping.

Examples:
  subcut add movie.srt -s 00:00:01,000 --end 00:00:04,000 -c "Subtitles by subcut"
  subcut add movie.srt -s 10s --end 12s -c "[door slams]" --adjust`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringP("start", "s", "0", "Start of the new cue")
	addCmd.Flags().String("end", "0", "End of the new cue")
	addCmd.Flags().StringP("content", "c", "", "Text of the new cue (required)")
	addCmd.Flags().
		BoolP("adjust", "a", false, "Push later cues back by the new cue's duration")

	_ = addCmd.MarkFlagRequired("content")
}

func runAdd(cmd *cobra.Command, args []string) error {
	path := inputArg(args)

	start, err := timeFlag(cmd, "start")
	if err != nil {
		return err
	}
	end, err := timeFlag(cmd, "end")
	if err != nil {
		return err
	}
	content, _ := cmd.Flags().GetString("content")
	adjust, _ := cmd.Flags().GetBool("adjust")

	cue := timeline.Block{Start: start, End: end, Content: content}

	logger.Infow("Adding cue",
		"input", path,
		"start", subtitle.FormatTimestamp(start),
		"end", subtitle.FormatTimestamp(end),
		"adjust", adjust,
	)

	return editFile(cmd, path, func(seq iter.Seq[timeline.Block]) (iter.Seq[timeline.Block], error) {
		added, err := timeline.Insert(seq, cue, adjust)
		if err != nil {
			return nil, fmt.Errorf("failed to add cue: %w", err)
		}
		return added, nil
	})
}
