package cli

import (
	"context"
	"fmt"

	"github.com/mgpai22/subcut/internal/subtitle"
	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
)

var muxCmd = &cobra.Command{
	Use:   "mux [subtitle_file]...",
	Short: "Merge several subtitle tracks into one",
	Long: `Merge two or more subtitle files into a single timeline, typically to
show two languages at once.

Start and end times that lie close together across tracks are snapped to a
common value so merged cues appear and disappear together. --ms sets how
close is close enough and --width how far apart in the timeline matching
cues may sit. With --top-and-bottom the first track is placed at the top
of the screen and the second at the bottom instead.

Examples:
  subcut mux movie.en.srt movie.zh.srt -o movie.bilingual.srt
  subcut mux movie.en.srt movie.zh.srt --top-and-bottom --format ass -o movie.ass`,
	Args: cobra.MinimumNArgs(2),
	RunE: runMux,
}

func init() {
	rootCmd.AddCommand(muxCmd)

	muxCmd.Flags().
		String("ms", "", "Tolerance for snapping times together (default 600ms)")
	muxCmd.Flags().
		IntP("width", "w", 0, "How many neighbouring cues to compare (default 5)")
	muxCmd.Flags().
		BoolP("top-and-bottom", "t", false, "Place tracks at the top and bottom of the screen")
	muxCmd.Flags().
		Bool("no-time-matching", false, "Merge without snapping times together")
}

func runMux(cmd *cobra.Command, args []string) error {
	opts := timeline.MuxOptions{
		Tolerance: cfg.Mux.Tolerance,
		Width:     cfg.Mux.Width,
	}
	if cmd.Flags().Changed("ms") {
		var err error
		if opts.Tolerance, err = timeFlag(cmd, "ms"); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("width") {
		opts.Width, _ = cmd.Flags().GetInt("width")
	}
	opts.TopAndBottom, _ = cmd.Flags().GetBool("top-and-bottom")
	opts.NoTimeMatching, _ = cmd.Flags().GetBool("no-time-matching")

	if opts.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative, got %s", opts.Tolerance)
	}
	if opts.Width < 1 {
		return fmt.Errorf("width must be positive, got %d", opts.Width)
	}

	return runPipeline(cmd, args, func(ctx context.Context) error {
		tracks := make([][]timeline.Block, 0, len(args))
		var format subtitle.Format
		for i, path := range args {
			blocks, f, err := readBlocks(cmd, path)
			if err != nil {
				return err
			}
			if i == 0 {
				format = f
			}
			tracks = append(tracks, blocks)
		}

		logger.Infow("Merging subtitle tracks",
			"tracks", len(tracks),
			"tolerance", opts.Tolerance,
			"width", opts.Width,
			"top_and_bottom", opts.TopAndBottom,
			"time_matching", !opts.TopAndBottom && !opts.NoTimeMatching,
		)

		merged := timeline.Mux(tracks, opts)
		return writeTimeline(cmd, timeline.FromSlice(merged), format)
	})
}
