package timeline

import (
	"iter"
	"slices"
	"time"
)

// Split cuts every block whose open interval contains cut into two contiguous
// blocks sharing the original content.
//
// Blocks that end at or before cut are emitted as they arrive. Blocks starting
// exactly at cut and the right halves of straddling blocks are held back until
// the first block starting after cut (or the end of input), then flushed in
// (start, end) order. Everything after the flush passes through unchanged, so
// only the cues pinned to cut are ever buffered.
func Split(seq iter.Seq[Block], cut time.Duration) iter.Seq[Block] {
	return Reindex(split(seq, cut))
}

func split(seq iter.Seq[Block], cut time.Duration) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		var pending []Block
		flushed := false

		flush := func() bool {
			flushed = true
			slices.SortStableFunc(pending, Compare)
			for _, b := range pending {
				if !yield(b) {
					return false
				}
			}
			pending = nil
			return true
		}

		for b := range seq {
			if flushed {
				if !yield(b) {
					return
				}
				continue
			}

			switch {
			case b.Start < cut && cut < b.End:
				left, right := b, b
				left.End = cut
				right.Start = cut
				pending = append(pending, right)
				if !yield(left) {
					return
				}
			case b.Start == cut && b.End != cut:
				pending = append(pending, b)
			case b.Start > cut:
				if !flush() || !yield(b) {
					return
				}
			default:
				// ends at or before cut, or zero-length at cut
				if !yield(b) {
					return
				}
			}
		}

		if !flushed {
			flush()
		}
	}
}
