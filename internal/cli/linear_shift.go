package cli

import (
	"fmt"
	"iter"
	"time"

	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
)

var linearShiftCmd = &cobra.Command{
	Use:   "linear-shift [subtitle_file]",
	Short: "Correct drifting subtitles from two reference points",
	Long: `Retime every cue with a linear correction. Give two cues that are out of
sync: --f1 is when the first one currently appears and --t1 is when it
should appear, and likewise --f2 and --t2 for a second cue later on.

Use this when subtitles drift further out of sync over time, which happens
with a different frame rate or cut.

Examples:
  subcut linear-shift movie.srt --f1 00:01:00,000 --t1 00:01:02,000 \
    --f2 01:30:00,000 --t2 01:33:45,000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLinearShift,
}

func init() {
	rootCmd.AddCommand(linearShiftCmd)

	linearShiftCmd.Flags().String("f1", "", "Current time of the first reference (required)")
	linearShiftCmd.Flags().String("t1", "", "Correct time of the first reference (required)")
	linearShiftCmd.Flags().String("f2", "", "Current time of the second reference (required)")
	linearShiftCmd.Flags().String("t2", "", "Correct time of the second reference (required)")

	for _, name := range []string{"f1", "t1", "f2", "t2"} {
		_ = linearShiftCmd.MarkFlagRequired(name)
	}
}

func runLinearShift(cmd *cobra.Command, args []string) error {
	path := inputArg(args)

	var points [4]time.Duration
	for i, name := range []string{"f1", "t1", "f2", "t2"} {
		d, err := timeFlag(cmd, name)
		if err != nil {
			return err
		}
		points[i] = d
	}

	correction, err := timeline.NewCorrection(
		points[0], points[1],
		points[2], points[3],
	)
	if err != nil {
		return fmt.Errorf("invalid reference points: %w", err)
	}

	logger.Infow("Retiming subtitles",
		"input", path,
		"angular", correction.Angular,
		"linear_ms", correction.Linear,
	)

	return editFile(cmd, path, func(seq iter.Seq[timeline.Block]) (iter.Seq[timeline.Block], error) {
		return timeline.Retime(seq, correction), nil
	})
}
