package timeline

import (
	"iter"
	"strings"
)

// Matcher reports whether a piece of cue content should be kept.
type Matcher func(string) bool

// Processor rewrites a piece of cue content.
type Processor func(string) string

type MatchOptions struct {
	// nil matches everything
	Match Matcher
	// nil leaves content untouched
	Process Processor
	// PerLine applies Match and Process to each content line rather than to
	// the whole content.
	PerLine bool
	Invert  bool
}

// Match filters cue content. Whole-content matching empties cues that do not
// match and processes those that do; per-line matching keeps only the
// matching lines, each processed. Cues are never dropped, so emptied cues are
// left for the composer to discard.
func Match(seq iter.Seq[Block], opts MatchOptions) iter.Seq[Block] {
	match := opts.Match
	if match == nil {
		match = func(string) bool { return true }
	}
	process := opts.Process
	if process == nil {
		process = func(s string) string { return s }
	}
	keep := func(s string) bool { return match(s) != opts.Invert }

	return Reindex(func(yield func(Block) bool) {
		for b := range seq {
			if opts.PerLine {
				var lines []string
				for _, line := range strings.Split(b.Content, "\n") {
					if keep(line) {
						lines = append(lines, process(line))
					}
				}
				b.Content = strings.Join(lines, "\n")
			} else if keep(b.Content) {
				b.Content = process(b.Content)
			} else {
				b.Content = ""
			}

			if !yield(b) {
				return
			}
		}
	})
}

// Process runs fn over the content of every cue.
func Process(seq iter.Seq[Block], fn Processor) iter.Seq[Block] {
	return Match(seq, MatchOptions{Process: fn})
}
