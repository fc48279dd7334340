package cli

import (
	"iter"

	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [subtitle_file]",
	Short: "Parse and rewrite a subtitle file cleanly",
	Long: `Read a subtitle file and write it back out: cues renumbered from 1, blank
lines inside cues removed, cues sorted by time, and a consistent layout.
With --strict=false malformed cues are skipped, and cues that start before
zero or do not end after they start are dropped instead of failing.

Also converts between formats and encodings.

Examples:
  subcut normalize broken.srt --strict=false -o fixed.srt
  subcut normalize movie.srt -o movie.vtt
  subcut normalize old.srt -e gbk --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	path := inputArg(args)

	logger.Infow("Normalizing subtitles", "input", path, "strict", strictMode(cmd))

	return editFile(cmd, path, func(seq iter.Seq[timeline.Block]) (iter.Seq[timeline.Block], error) {
		return seq, nil
	})
}
