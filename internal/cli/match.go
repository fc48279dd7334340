package cli

import (
	"fmt"
	"iter"
	"regexp"
	"unicode"

	"github.com/mgpai22/subcut/internal/timeline"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [subtitle_file]",
	Short: "Filter and edit cue text by pattern",
	Long: `Keep the cue text matching a regular expression and optionally rewrite it.

By default the whole text of each cue is tested and cues that do not match
are emptied. With --lines each line is tested on its own and only matching
lines are kept. --replace rewrites matching text using the pattern's
capture groups ($1, ${name}).

Cues left without any text are dropped from the output.

Examples:
  subcut match movie.srt --han --lines
  subcut match movie.srt --pattern '^\d+$' --lines --invert
  subcut match movie.srt --strip-tags
  subcut match movie.srt --pattern 'colour' --replace 'color'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMatch,
}

var markupTags = regexp.MustCompile(`\{[^}]*\}|</?[a-zA-Z][^>]*>`)

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().String("pattern", "", "Regular expression text must match")
	matchCmd.Flags().String("replace", "", "Replacement for the matched pattern")
	matchCmd.Flags().
		BoolP("lines", "l", false, "Match each line rather than the whole cue")
	matchCmd.Flags().Bool("invert", false, "Keep text that does not match")
	matchCmd.Flags().Bool("han", false, "Match text containing Chinese characters")
	matchCmd.Flags().Bool("strip-tags", false, "Remove HTML and ASS override tags")
}

func runMatch(cmd *cobra.Command, args []string) error {
	path := inputArg(args)

	pattern, _ := cmd.Flags().GetString("pattern")
	replace, _ := cmd.Flags().GetString("replace")
	perLine, _ := cmd.Flags().GetBool("lines")
	invert, _ := cmd.Flags().GetBool("invert")
	han, _ := cmd.Flags().GetBool("han")
	stripTags, _ := cmd.Flags().GetBool("strip-tags")

	if pattern != "" && han {
		return fmt.Errorf("--pattern and --han cannot be used together")
	}
	if cmd.Flags().Changed("replace") && pattern == "" {
		return fmt.Errorf("--replace needs --pattern")
	}

	opts := timeline.MatchOptions{PerLine: perLine, Invert: invert}

	var re *regexp.Regexp
	if pattern != "" {
		var err error
		if re, err = regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
		opts.Match = re.MatchString
	}
	if han {
		opts.Match = hasHan
	}
	if cmd.Flags().Changed("replace") {
		opts.Process = func(s string) string {
			return re.ReplaceAllString(s, replace)
		}
	}

	logger.Infow("Matching subtitles",
		"input", path,
		"pattern", pattern,
		"han", han,
		"lines", perLine,
		"invert", invert,
		"strip_tags", stripTags,
	)

	return editFile(cmd, path, func(seq iter.Seq[timeline.Block]) (iter.Seq[timeline.Block], error) {
		seq = timeline.Match(seq, opts)
		if stripTags {
			seq = timeline.Process(seq, func(s string) string {
				return markupTags.ReplaceAllString(s, "")
			})
		}
		return seq, nil
	})
}

func hasHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
