package cli

import (
	"iter"

	"github.com/mgpai22/subcut/internal/subtitle"
	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find [subtitle_file]",
	Short: "Keep only the cues between two timestamps",
	Long: `Keep the cues that start between --t1 and --t2. Cues crossing either
timestamp are split so only the part inside the range is kept.

When --t1 is after --t2 the range wraps around: cues after --t1 and cues
before --t2 are kept. Equal timestamps (the default) keep everything.

The --adjust flag moves the kept cues so the range starts at zero.

Examples:
  subcut find movie.srt --t1 00:10:00,000 --t2 00:20:00,000
  subcut find movie.srt --t1 10m --t2 20m --adjust -o clip.srt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)

	findCmd.Flags().String("t1", "0", "Start of the range")
	findCmd.Flags().String("t2", "0", "End of the range")
	findCmd.Flags().
		BoolP("adjust", "a", false, "Shift the result so the range starts at zero")
}

func runFind(cmd *cobra.Command, args []string) error {
	return selectRange(cmd, inputArg(args), false)
}

// selectRange backs both find and remove.
func selectRange(cmd *cobra.Command, path string, invert bool) error {
	from, err := timeFlag(cmd, "t1")
	if err != nil {
		return err
	}
	to, err := timeFlag(cmd, "t2")
	if err != nil {
		return err
	}
	adjust, _ := cmd.Flags().GetBool("adjust")

	logger.Infow("Selecting subtitle range",
		"input", path,
		"from", subtitle.FormatTimestamp(from),
		"to", subtitle.FormatTimestamp(to),
		"remove", invert,
		"adjust", adjust,
	)

	window := timeline.Window{
		From:   from,
		To:     to,
		Invert: invert,
		Adjust: adjust,
	}
	return editFile(cmd, path, func(seq iter.Seq[timeline.Block]) (iter.Seq[timeline.Block], error) {
		return timeline.Select(seq, window), nil
	})
}
