package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mgpai22/subcut/internal/subtitle"
	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var showCmd = &cobra.Command{
	Use:   "show [subtitle_file]",
	Short: "Print cues as a table",
	Long: `Print the cues of a subtitle file as a table of index, start, end and
text, one row per cue, fitted to the terminal width. Line breaks inside a
cue are shown as " / ".

Examples:
  subcut show movie.srt
  subcut find movie.srt --t1 10m --t2 11m | subcut show`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

const fallbackWidth = 100

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Int("width", 0, "Table width (default terminal width)")
}

func runShow(cmd *cobra.Command, args []string) error {
	path := inputArg(args)

	width, _ := cmd.Flags().GetInt("width")
	if width <= 0 {
		width = terminalWidth()
	}

	blocks, _, err := readBlocks(cmd, path)
	if err != nil {
		return err
	}

	writeTable(cmd.OutOrStdout(), blocks, width)
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 40 {
		return fallbackWidth
	}
	return width
}

func writeTable(w io.Writer, blocks []timeline.Block, width int) {
	indexWidth := max(len(fmt.Sprint(len(blocks))), 1)
	const timeWidth = len("00:00:00,000")

	textWidth := max(width-indexWidth-2*timeWidth-6, 10)

	for _, b := range blocks {
		text := strings.ReplaceAll(b.Content, "\n", " / ")
		text = runewidth.Truncate(text, textWidth, "…")

		fmt.Fprintf(w, "%*d  %s  %s  %s\n",
			indexWidth,
			b.Index,
			runewidth.FillRight(subtitle.FormatTimestamp(b.Start), timeWidth),
			runewidth.FillRight(subtitle.FormatTimestamp(b.End), timeWidth),
			text,
		)
	}
}
