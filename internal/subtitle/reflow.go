package subtitle

import (
	"iter"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/mgpai22/subcut/internal/timeline"
)

// Reflower breaks overlong cues into shorter ones and wraps their text.
// Widths are display columns, so CJK text counts double.
type Reflower struct {
	MaxCharsPerLine int
	MaxLinesPerSub  int
	MaxDuration     time.Duration
}

func NewReflower() *Reflower {
	return &Reflower{
		MaxCharsPerLine: 42, // Standard subtitle line length
		MaxLinesPerSub:  2,  // Most players support 2 lines
		MaxDuration:     7 * time.Second,
	}
}

// Reflow splits cues that are too long to read or stay on screen too long.
// Time is divided evenly among the pieces and the last one keeps the
// original end.
func (g *Reflower) Reflow(seq iter.Seq[timeline.Block]) iter.Seq[timeline.Block] {
	return timeline.Reindex(func(yield func(timeline.Block) bool) {
		for b := range seq {
			text := strings.TrimSpace(b.Content)
			if text == "" {
				continue
			}

			if !g.needsSplit(text, b.Duration()) {
				b.Content = g.Wrap(text)
				if !yield(b) {
					return
				}
				continue
			}

			for _, piece := range g.splitBlock(b) {
				if !yield(piece) {
					return
				}
			}
		}
	})
}

func (g *Reflower) needsSplit(text string, duration time.Duration) bool {
	if runewidth.StringWidth(text) > g.MaxCharsPerLine*g.MaxLinesPerSub {
		return true
	}
	return g.MaxDuration > 0 && duration > g.MaxDuration
}

func (g *Reflower) splitBlock(b timeline.Block) []timeline.Block {
	text := strings.TrimSpace(b.Content)
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	maxChars := g.MaxCharsPerLine * g.MaxLinesPerSub
	numSplits := (runewidth.StringWidth(text) + maxChars - 1) / maxChars
	if g.MaxDuration > 0 {
		numSplits = max(numSplits, int(b.Duration()/g.MaxDuration)+1)
	}
	// a single word cannot be split further
	numSplits = min(max(numSplits, 1), len(words))

	wordsPerSplit := (len(words) + numSplits - 1) / numSplits
	durationPerSplit := b.Duration() / time.Duration(numSplits)

	var pieces []timeline.Block
	currentStart := b.Start

	for len(words) > 0 {
		endIdx := min(wordsPerSplit, len(words))
		splitText := strings.Join(words[:endIdx], " ")
		words = words[endIdx:]

		currentEnd := currentStart + durationPerSplit
		if len(words) == 0 {
			currentEnd = b.End
		}

		pieces = append(pieces, timeline.Block{
			Start:   currentStart,
			End:     currentEnd,
			Content: g.Wrap(splitText),
		})
		currentStart = currentEnd
	}

	return pieces
}

// Wrap breaks text that does not fit one line into two lines of similar
// width, at the word boundary closest to the middle.
func (g *Reflower) Wrap(text string) string {
	text = strings.TrimSpace(strings.Join(strings.Fields(text), " "))
	width := runewidth.StringWidth(text)

	if width <= g.MaxCharsPerLine {
		return text
	}

	words := strings.Fields(text)
	if len(words) < 2 {
		return text
	}

	middle := width / 2
	bestSplit := 0
	bestDiff := width

	currentLen := 0
	for i, word := range words[:len(words)-1] {
		currentLen += runewidth.StringWidth(word)
		if i > 0 {
			currentLen++ // space
		}

		diff := abs(currentLen - middle)
		if diff < bestDiff {
			bestDiff = diff
			bestSplit = i + 1
		}
	}

	line1 := strings.Join(words[:bestSplit], " ")
	line2 := strings.Join(words[bestSplit:], " ")
	return line1 + "\n" + line2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
