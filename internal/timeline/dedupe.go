package timeline

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// Dedupe removes cues repeating the content of another cue that starts within
// tolerance of it. A zero tolerance matches on content alone.
//
// Cues with equal content are ordered by start and grouped into runs where each
// start is within tolerance of the previous one; the earliest cue of each run
// survives. The result keeps the input order and is reindexed.
func Dedupe(blocks []Block, tolerance time.Duration) []Block {
	order := make([]int, len(blocks))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if c := strings.Compare(blocks[a].Content, blocks[b].Content); c != 0 {
			return c
		}
		return cmp.Compare(blocks[a].Start, blocks[b].Start)
	})

	duplicate := make(map[int]bool)
	for i := 1; i < len(order); i++ {
		prev, cur := blocks[order[i-1]], blocks[order[i]]
		if prev.Content != cur.Content {
			continue
		}
		if tolerance == 0 || prev.Start+tolerance >= cur.Start {
			duplicate[order[i]] = true
		}
	}

	kept := make([]Block, 0, len(blocks)-len(duplicate))
	for i, b := range blocks {
		if !duplicate[i] {
			b.Index = len(kept) + 1
			kept = append(kept, b)
		}
	}
	return kept
}
