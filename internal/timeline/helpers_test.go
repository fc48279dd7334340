package timeline

import (
	"time"
)

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func blk(index, startMs, endMs int, content string) Block {
	return Block{
		Index:   index,
		Start:   ms(startMs),
		End:     ms(endMs),
		Content: content,
	}
}

// five overlapping cues shared by most tests
func sample() []Block {
	return []Block{
		blk(1, 11000, 12701, "A"),
		blk(2, 12701, 14203, "B"),
		blk(3, 14500, 19738, "C"),
		blk(4, 16538, 17272, "D"),
		blk(5, 17272, 18440, "E"),
	}
}

// reindexed copy of the given blocks, as a composer would emit them
func renumbered(blocks ...Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		b.Index = i + 1
		out[i] = b
	}
	return out
}
