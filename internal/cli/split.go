package cli

import (
	"iter"

	"github.com/mgpai22/subcut/internal/subtitle"
	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split [subtitle_file]",
	Short: "Split cues that span a timestamp",
	Long: `Split every cue that is on screen at the given timestamp into two cues,
one ending and one starting at the timestamp. Cues starting exactly at the
timestamp are left alone.

Timestamps may be written as subtitle times (00:01:02,500), Go durations
(1m2.5s) or bare milliseconds (62500).

Examples:
  subcut split movie.srt -t 00:45:00,000 -o movie.split.srt
  cat movie.srt | subcut split -t 45m`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().
		StringP("timestamp", "t", "", "Timestamp to split at (required)")

	_ = splitCmd.MarkFlagRequired("timestamp")
}

func runSplit(cmd *cobra.Command, args []string) error {
	path := inputArg(args)

	cut, err := timeFlag(cmd, "timestamp")
	if err != nil {
		return err
	}

	logger.Infow("Splitting subtitles",
		"input", path,
		"at", subtitle.FormatTimestamp(cut),
	)

	return editFile(cmd, path, func(seq iter.Seq[timeline.Block]) (iter.Seq[timeline.Block], error) {
		return timeline.Split(seq, cut), nil
	})
}
