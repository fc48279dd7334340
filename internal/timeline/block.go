// Package timeline implements the interval algebra used to edit subtitle
// timelines: splitting, range selection, insertion, splicing, deduplication,
// alignment and retiming of ordered cue blocks.
//
// A timeline is an iter.Seq[Block]. Most operations consume and produce lazy
// sequences so large inputs can be streamed; the few that need a global order
// (Dedupe, Align, block-mode Splice) materialize their input explicitly.
package timeline

import (
	"cmp"
	"iter"
	"slices"
	"time"
)

// represents single timed text cue
type Block struct {
	// Index is a display label, recomputed 1..N on every emitted timeline.
	Index   int
	Start   time.Duration
	End     time.Duration
	Content string
}

func (b Block) Duration() time.Duration {
	return b.End - b.Start
}

// moves both timestamps by d
func (b Block) shifted(d time.Duration) Block {
	b.Start += d
	b.End += d
	return b
}

// Compare orders blocks by start, then by end.
func Compare(a, b Block) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.End, b.End)
}

// FromSlice returns a sequence over blocks. The slice is not copied.
func FromSlice(blocks []Block) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for _, b := range blocks {
			if !yield(b) {
				return
			}
		}
	}
}

// Materialize drains seq into a list. It is the only place a lazy timeline is
// buffered as a whole; the result is never nil.
func Materialize(seq iter.Seq[Block]) []Block {
	blocks := []Block{}
	if seq == nil {
		return blocks
	}
	for b := range seq {
		blocks = append(blocks, b)
	}
	return blocks
}

// Reindex labels blocks 1..N in emission order.
func Reindex(seq iter.Seq[Block]) iter.Seq[Block] {
	return func(yield func(Block) bool) {
		idx := 1
		for b := range seq {
			b.Index = idx
			if !yield(b) {
				return
			}
			idx++
		}
	}
}

// Sort returns a copy of blocks stably ordered by (start, end) and reindexed.
func Sort(blocks []Block) []Block {
	sorted := slices.Clone(blocks)
	slices.SortStableFunc(sorted, Compare)
	for i := range sorted {
		sorted[i].Index = i + 1
	}
	if sorted == nil {
		sorted = []Block{}
	}
	return sorted
}
