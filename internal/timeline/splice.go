package timeline

import (
	"iter"
	"time"
)

// Paste describes where a secondary timeline goes inside a primary one.
type Paste struct {
	// At is the anchor; the secondary's zero lands on At+Gap.
	At  time.Duration
	Gap time.Duration
	// Block pastes the secondary as one chunk: primary cues starting after At
	// are pushed back by the secondary's span plus Gap instead of interleaving.
	Block bool
}

// Splice merges secondary into primary as described by p.
//
// Cues are merged by their shifted start. On equal starts the shorter cue
// comes first, and the primary cue wins a complete tie. Only block mode
// buffers anything, and then only the secondary.
func Splice(primary, secondary iter.Seq[Block], p Paste) iter.Seq[Block] {
	return Reindex(func(yield func(Block) bool) {
		var chunk time.Duration
		if p.Block {
			copied := Materialize(secondary)
			for _, b := range copied {
				chunk = max(chunk, b.End)
			}
			chunk += p.Gap
			secondary = FromSlice(copied)
		}

		nextPrimary, stopPrimary := iter.Pull(primary)
		defer stopPrimary()
		nextCopy, stopCopy := iter.Pull(secondary)
		defer stopCopy()

		pullPrimary := func() (Block, bool) {
			b, ok := nextPrimary()
			if ok && b.Start > p.At {
				b = b.shifted(chunk)
			}
			return b, ok
		}
		pullCopy := func() (Block, bool) {
			b, ok := nextCopy()
			return b.shifted(p.At + p.Gap), ok
		}

		orig, hasOrig := pullPrimary()
		copied, hasCopy := pullCopy()
		for hasOrig || hasCopy {
			if !hasOrig || (hasCopy && copyFirst(orig, copied)) {
				if !yield(copied) {
					return
				}
				copied, hasCopy = pullCopy()
				continue
			}
			if !yield(orig) {
				return
			}
			orig, hasOrig = pullPrimary()
		}
	})
}

func copyFirst(orig, copied Block) bool {
	if copied.Start != orig.Start {
		return copied.Start < orig.Start
	}
	return copied.End < orig.End
}
