package cli

import (
	"context"
	"iter"

	"github.com/mgpai22/subcut/internal/subtitle"
	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
)

var pasteCmd = &cobra.Command{
	Use:   "paste [subtitle_file]",
	Short: "Copy a range of cues and paste it at another time",
	Long: `Copy the cues between --t1 and --t2 and paste them at --paste, merged
with the original timeline. The copy comes from the input itself, or from
another file given with --from.

By default the copied range keeps its own times and is shifted to start at
--paste plus --gap. With --zero the copy is first moved so the range starts
at zero. With --block the pasted cues are inserted as one chunk: every cue
starting after --paste is pushed back to make room for it.

Examples:
  subcut paste movie.srt --t1 1m --t2 2m -p 10m --zero
  subcut paste movie.srt --from intro.srt -p 0 --block --gap 500ms`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPaste,
}

func init() {
	rootCmd.AddCommand(pasteCmd)

	pasteCmd.Flags().String("t1", "0", "Start of the range to copy")
	pasteCmd.Flags().String("t2", "0", "End of the range to copy")
	pasteCmd.Flags().StringP("paste", "p", "0", "Where to paste the copied cues")
	pasteCmd.Flags().StringP("gap", "s", "0", "Extra space before the pasted cues")
	pasteCmd.Flags().
		BoolP("block", "b", false, "Paste as one chunk, pushing later cues back")
	pasteCmd.Flags().
		BoolP("zero", "z", false, "Move the copied range to start at zero before pasting")
	pasteCmd.Flags().String("from", "", "Copy from this file instead of the input")
}

func runPaste(cmd *cobra.Command, args []string) error {
	path := inputArg(args)

	from, err := timeFlag(cmd, "t1")
	if err != nil {
		return err
	}
	to, err := timeFlag(cmd, "t2")
	if err != nil {
		return err
	}
	at, err := timeFlag(cmd, "paste")
	if err != nil {
		return err
	}
	gap, err := timeFlag(cmd, "gap")
	if err != nil {
		return err
	}
	block, _ := cmd.Flags().GetBool("block")
	zero, _ := cmd.Flags().GetBool("zero")
	otherPath, _ := cmd.Flags().GetString("from")

	paste := timeline.Paste{At: at, Gap: gap, Block: block}

	inputs := []string{path}
	if otherPath != "" {
		inputs = append(inputs, otherPath)
	}

	logger.Infow("Pasting subtitles",
		"input", path,
		"from", otherPath,
		"t1", subtitle.FormatTimestamp(from),
		"t2", subtitle.FormatTimestamp(to),
		"at", subtitle.FormatTimestamp(at),
		"gap", gap,
		"block", block,
		"zero", zero,
	)

	return runPipeline(cmd, inputs, func(ctx context.Context) error {
		copyRange := func(seq iter.Seq[timeline.Block]) iter.Seq[timeline.Block] {
			return timeline.Find(seq, from, to, zero)
		}

		// copying from the input itself needs it twice, so it is buffered
		if otherPath == "" {
			blocks, format, err := readBlocks(cmd, path)
			if err != nil {
				return err
			}
			merged := timeline.Splice(
				timeline.FromSlice(blocks),
				copyRange(timeline.FromSlice(blocks)),
				paste,
			)
			return writeTimeline(cmd, merged, format)
		}

		other, _, err := readBlocks(cmd, otherPath)
		if err != nil {
			return err
		}

		src, err := openSource(cmd, path)
		if err != nil {
			return err
		}
		defer func() {
			_ = src.Close()
		}()

		merged := timeline.Splice(
			src.Blocks(),
			copyRange(timeline.FromSlice(other)),
			paste,
		)
		return writeTimeline(cmd, merged, src.format, src)
	})
}
