package timeline

import (
	"iter"
	"time"
)

// Window selects the part of a timeline whose cues start in [From, To).
//
// When From > To the window wraps around and keeps cues starting at or after
// From or before To. From == To selects everything. Invert keeps the
// complement instead, which is how cues are removed rather than found.
type Window struct {
	From   time.Duration
	To     time.Duration
	Invert bool
	// Adjust moves the retained cues back so the window's leading edge lands on 0.
	Adjust bool
}

func (w Window) keeps(start time.Duration) bool {
	var inside bool
	switch {
	case w.From == w.To:
		inside = true
	case w.From < w.To:
		inside = start >= w.From && start < w.To
	default:
		inside = start >= w.From || start < w.To
	}
	return inside != w.Invert
}

// leading edge of whatever is kept: an inverted window starts where the
// selected one stops
func (w Window) offset() time.Duration {
	switch {
	case !w.Adjust:
		return 0
	case w.Invert:
		return w.To
	default:
		return w.From
	}
}

// Select returns the cues visible through w. Cues crossing either edge are
// split first so every retained cue lies cleanly inside the window.
func Select(seq iter.Seq[Block], w Window) iter.Seq[Block] {
	src := seq
	if w.From != w.To {
		src = split(split(seq, w.From), w.To)
	}
	offset := w.offset()

	return Reindex(func(yield func(Block) bool) {
		for b := range src {
			if !w.keeps(b.Start) {
				continue
			}
			if !yield(b.shifted(-offset)) {
				return
			}
		}
	})
}

// Find keeps the cues between from and to.
func Find(
	seq iter.Seq[Block],
	from, to time.Duration,
	adjust bool,
) iter.Seq[Block] {
	return Select(seq, Window{From: from, To: to, Adjust: adjust})
}

// Remove drops the cues between from and to.
func Remove(
	seq iter.Seq[Block],
	from, to time.Duration,
	adjust bool,
) iter.Seq[Block] {
	return Select(seq, Window{From: from, To: to, Invert: true, Adjust: adjust})
}
