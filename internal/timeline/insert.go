package timeline

import (
	"iter"
	"time"
)

// Insert places cue at its sorted position in seq, which is assumed to be
// ordered by start. Among cues sharing its start the new one is ordered by
// end, after any existing cue with the same end.
//
// With adjust, every cue emitted after the new one is pushed back by the new
// cue's duration. The cue's Index is ignored.
func Insert(
	seq iter.Seq[Block],
	cue Block,
	adjust bool,
) (iter.Seq[Block], error) {
	if cue.End <= cue.Start {
		return nil, &InvalidRangeError{Start: cue.Start, End: cue.End}
	}

	return Reindex(func(yield func(Block) bool) {
		added := false
		var offset time.Duration

		for b := range seq {
			if !added && insertsBefore(cue, b) {
				if !yield(cue) {
					return
				}
				added = true
				if adjust {
					offset = cue.Duration()
				}
			}
			if !yield(b.shifted(offset)) {
				return
			}
		}

		if !added {
			yield(cue)
		}
	}), nil
}

func insertsBefore(cue, b Block) bool {
	if cue.Start != b.Start {
		return cue.Start < b.Start
	}
	return cue.End < b.End
}
