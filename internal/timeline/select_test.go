package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFind(t *testing.T) {
	x := sample()
	tests := []struct {
		name     string
		in       []Block
		from, to int
		adjust   bool
		want     []Block
	}{
		{
			name: "empty input",
			from: 0, to: 30000,
			want: []Block{},
		},
		{
			name: "whole track",
			in:   x,
			from: 11000, to: 19738,
			want: x,
		},
		{
			name: "first cue",
			in:   x,
			from: 11000, to: 12701,
			want: renumbered(x[0]),
		},
		{
			name: "first two cues",
			in:   x,
			from: 11000, to: 14500,
			want: renumbered(x[0], x[1]),
		},
		{
			name: "splits at window end",
			in:   x,
			from: 0, to: 17500,
			want: []Block{
				blk(1, 11000, 12701, "A"),
				blk(2, 12701, 14203, "B"),
				blk(3, 14500, 17500, "C"),
				blk(4, 16538, 17272, "D"),
				blk(5, 17272, 17500, "E"),
			},
		},
		{
			name: "window before first cue",
			in:   x,
			from: 0, to: 11000,
			want: []Block{},
		},
		{
			name: "wrap-around on empty input",
			from: 30000, to: 0,
			want: []Block{},
		},
		{
			name: "equal endpoints select everything",
			in:   x,
			from: 11000, to: 11000,
			want: x,
		},
		{
			name: "wrap-around keeping nothing",
			in:   x,
			from: 19738, to: 11000,
			want: []Block{},
		},
		{
			name: "wrap-around skipping first cue",
			in:   x,
			from: 12701, to: 11000,
			want: renumbered(x[1], x[2], x[3], x[4]),
		},
		{
			name: "wrap-around from third cue",
			in:   x,
			from: 14500, to: 11000,
			want: renumbered(x[2], x[3], x[4]),
		},
		{
			name: "wrap-around splits at window start",
			in:   x,
			from: 17500, to: 0,
			want: []Block{
				blk(1, 17500, 18440, "E"),
				blk(2, 17500, 19738, "C"),
			},
		},
		{
			name: "adjust",
			in:   x,
			from: 11000, to: 14500,
			adjust: true,
			want: []Block{
				blk(1, 0, 1701, "A"),
				blk(2, 1701, 3203, "B"),
			},
		},
		{
			name: "wrap-around adjust",
			in:   x,
			from: 14500, to: 11000,
			adjust: true,
			want: []Block{
				blk(1, 0, 5238, "C"),
				blk(2, 2038, 2772, "D"),
				blk(3, 2772, 3940, "E"),
			},
		},
		{
			name: "wrap-around adjust after split",
			in:   x,
			from: 17500, to: 0,
			adjust: true,
			want: []Block{
				blk(1, 0, 940, "E"),
				blk(2, 0, 2238, "C"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Materialize(Find(FromSlice(tt.in), ms(tt.from), ms(tt.to), tt.adjust))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemove(t *testing.T) {
	x := sample()
	tests := []struct {
		name     string
		in       []Block
		from, to int
		adjust   bool
		want     []Block
	}{
		{
			name: "empty input",
			from: 0, to: 30000,
			want: []Block{},
		},
		{
			name: "first cue",
			in:   x,
			from: 11000, to: 12701,
			want: renumbered(x[1], x[2], x[3], x[4]),
		},
		{
			name: "first two cues",
			in:   x,
			from: 11000, to: 14500,
			want: renumbered(x[2], x[3], x[4]),
		},
		{
			name: "whole track",
			in:   x,
			from: 11000, to: 19738,
			want: []Block{},
		},
		{
			name: "window covering track",
			in:   x,
			from: 0, to: 30000,
			want: []Block{},
		},
		{
			name: "splits at window end",
			in:   x,
			from: 0, to: 17500,
			want: []Block{
				blk(1, 17500, 18440, "E"),
				blk(2, 17500, 19738, "C"),
			},
		},
		{
			name: "wrap-around on empty input",
			from: 30000, to: 0,
			want: []Block{},
		},
		{
			name: "wrap-around covering nothing",
			in:   x,
			from: 30000, to: 0,
			want: x,
		},
		{
			name: "wrap-around keeps middle",
			in:   x,
			from: 14500, to: 11000,
			want: renumbered(x[0], x[1]),
		},
		{
			name: "wrap-around keeps everything",
			in:   x,
			from: 19738, to: 11000,
			want: x,
		},
		{
			name: "wrap-around keeps first cue",
			in:   x,
			from: 12701, to: 11000,
			want: renumbered(x[0]),
		},
		{
			name: "equal endpoints remove everything",
			in:   x,
			from: 11000, to: 11000,
			want: []Block{},
		},
		{
			name: "adjust",
			in:   x,
			from: 11000, to: 14500,
			adjust: true,
			want: []Block{
				blk(1, 0, 5238, "C"),
				blk(2, 2038, 2772, "D"),
				blk(3, 2772, 3940, "E"),
			},
		},
		{
			name: "adjust after split",
			in:   x,
			from: 0, to: 17500,
			adjust: true,
			want: []Block{
				blk(1, 0, 940, "E"),
				blk(2, 0, 2238, "C"),
			},
		},
		{
			name: "wrap-around adjust covering nothing",
			in:   x,
			from: 30000, to: 0,
			adjust: true,
			want: x,
		},
		{
			name: "wrap-around adjust",
			in:   x,
			from: 14500, to: 11000,
			adjust: true,
			want: []Block{
				blk(1, 0, 1701, "A"),
				blk(2, 1701, 3203, "B"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Materialize(Remove(FromSlice(tt.in), ms(tt.from), ms(tt.to), tt.adjust))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectCoversSplitTimeline(t *testing.T) {
	windows := [][2]int{
		{0, 17500},
		{11000, 14500},
		{14000, 18000},
		{17500, 0},
		{18000, 12000},
		{12701, 11000},
	}

	stripped := func(blocks []Block) []Block {
		out := make([]Block, len(blocks))
		for i, b := range blocks {
			b.Index = 0
			out[i] = b
		}
		return out
	}

	for _, w := range windows {
		from, to := ms(w[0]), ms(w[1])
		whole := Materialize(Split(Split(FromSlice(sample()), from), to))
		found := Materialize(Select(FromSlice(sample()), Window{From: from, To: to}))
		removed := Materialize(Select(FromSlice(sample()), Window{From: from, To: to, Invert: true}))

		assert.Len(t, found, len(whole)-len(removed), "window %v", w)
		assert.ElementsMatch(
			t,
			stripped(whole),
			append(stripped(found), stripped(removed)...),
			"window %v",
			w,
		)
	}
}
