package cli

import (
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [subtitle_file]",
	Short: "Remove the cues between two timestamps",
	Long: `Remove the cues that start between --t1 and --t2, keeping everything
else. Cues crossing either timestamp are split first so the parts outside
the range survive.

The --adjust flag moves the remaining cues back so the part after the
removed range starts at zero.

Examples:
  subcut remove movie.srt --t1 00:00:00,000 --t2 00:01:30,000
  subcut remove movie.srt --t1 1h --t2 1h5m -o cut.srt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().String("t1", "0", "Start of the range")
	removeCmd.Flags().String("t2", "0", "End of the range")
	removeCmd.Flags().
		BoolP("adjust", "a", false, "Shift the result back by the end of the range")
}

func runRemove(cmd *cobra.Command, args []string) error {
	return selectRange(cmd, inputArg(args), true)
}
