package cli

import (
	"fmt"
	"iter"

	"github.com/mgpai22/subcut/internal/subtitle"
	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
)

var reflowCmd = &cobra.Command{
	Use:   "reflow [subtitle_file]",
	Short: "Break long cues into readable pieces",
	Long: `Split cues with too much text or too long on screen into several shorter
cues, dividing the time evenly, and wrap text over at most --max-lines
lines. Width is measured in terminal columns, so CJK text counts double.

Defaults come from the reflow section of the config file.

Examples:
  subcut reflow transcript.srt -o readable.srt
  subcut reflow movie.srt --max-chars 32 --max-duration 5s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReflow,
}

func init() {
	rootCmd.AddCommand(reflowCmd)

	reflowCmd.Flags().Int("max-chars", 0, "Maximum columns per line (default 42)")
	reflowCmd.Flags().Int("max-lines", 0, "Maximum lines per cue (default 2)")
	reflowCmd.Flags().String("max-duration", "", "Maximum time on screen per cue, 0 for no limit (default 7s)")
}

func runReflow(cmd *cobra.Command, args []string) error {
	path := inputArg(args)

	reflower := &subtitle.Reflower{
		MaxCharsPerLine: cfg.Reflow.MaxCharsPerLine,
		MaxLinesPerSub:  cfg.Reflow.MaxLines,
		MaxDuration:     cfg.Reflow.MaxDuration,
	}
	if cmd.Flags().Changed("max-chars") {
		reflower.MaxCharsPerLine, _ = cmd.Flags().GetInt("max-chars")
	}
	if cmd.Flags().Changed("max-lines") {
		reflower.MaxLinesPerSub, _ = cmd.Flags().GetInt("max-lines")
	}
	if cmd.Flags().Changed("max-duration") {
		var err error
		if reflower.MaxDuration, err = timeFlag(cmd, "max-duration"); err != nil {
			return err
		}
	}

	if reflower.MaxCharsPerLine < 1 || reflower.MaxLinesPerSub < 1 {
		return fmt.Errorf("max-chars and max-lines must be positive")
	}
	if reflower.MaxDuration < 0 {
		return fmt.Errorf("max-duration must not be negative, got %s", reflower.MaxDuration)
	}

	logger.Infow("Reflowing subtitles",
		"input", path,
		"max_chars", reflower.MaxCharsPerLine,
		"max_lines", reflower.MaxLinesPerSub,
		"max_duration", reflower.MaxDuration,
	)

	return editFile(cmd, path, func(seq iter.Seq[timeline.Block]) (iter.Seq[timeline.Block], error) {
		return reflower.Reflow(seq), nil
	})
}
