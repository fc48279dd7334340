package cli

import (
	"iter"

	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [subtitle_file]",
	Short: "Move every cue by a fixed offset",
	Long: `Add a fixed offset to the start and end of every cue. Negative offsets
move subtitles earlier; cues pushed before zero are rejected in strict mode
and dropped with --strict=false.

Examples:
  subcut shift movie.srt --by 2.5s
  subcut shift movie.srt --by -00:00:01,200 -o fixed.srt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)

	shiftCmd.Flags().String("by", "", "Offset to add, e.g. 1.5s or -500ms (required)")

	_ = shiftCmd.MarkFlagRequired("by")
}

func runShift(cmd *cobra.Command, args []string) error {
	path := inputArg(args)

	offset, err := timeFlag(cmd, "by")
	if err != nil {
		return err
	}

	logger.Infow("Shifting subtitles", "input", path, "offset", offset)

	return editFile(cmd, path, func(seq iter.Seq[timeline.Block]) (iter.Seq[timeline.Block], error) {
		return timeline.ShiftBy(seq, offset), nil
	})
}
