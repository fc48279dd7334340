package timeline

import (
	"cmp"
	"slices"
	"time"
)

// Attr picks the timestamp Align works on.
type Attr int

const (
	AttrStart Attr = iota
	AttrEnd
)

func (a Attr) String() string {
	if a == AttrEnd {
		return "end"
	}
	return "start"
}

func (a Attr) of(b *Block) *time.Duration {
	if a == AttrEnd {
		return &b.End
	}
	return &b.Start
}

// Align snaps near-coincident timestamps together so overlapping cues from
// different tracks share exact boundaries.
//
// Blocks are sorted by attr. Each block in turn anchors a window of width
// blocks; following blocks in the window whose value is less than
// anchor+tolerance take the anchor's value. Snapping only ever moves a value
// back to an earlier anchor. The result is in attr order.
func Align(
	blocks []Block,
	tolerance time.Duration,
	attr Attr,
	width int,
) []Block {
	aligned := slices.Clone(blocks)
	slices.SortStableFunc(aligned, func(a, b Block) int {
		return cmp.Compare(*attr.of(&a), *attr.of(&b))
	})

	for i := range aligned {
		anchor := *attr.of(&aligned[i])
		for j := i + 1; j < len(aligned) && j < i+width; j++ {
			v := attr.of(&aligned[j])
			if anchor+tolerance <= *v {
				// sorted: nothing later in the window can match either
				break
			}
			*v = anchor
		}
	}
	return aligned
}

// ASS override tags used to stack muxed tracks.
const (
	PlacementTop    = `{\an8}`
	PlacementBottom = `{\an2}`
)

type MuxOptions struct {
	Tolerance time.Duration
	Width     int
	// TopAndBottom tags even tracks for the top of the screen and odd tracks
	// for the bottom. Stacked tracks never collide, so no time matching is done.
	TopAndBottom   bool
	NoTimeMatching bool
}

// Mux merges several tracks into one timeline, aligning start and end times
// across tracks unless disabled.
func Mux(tracks [][]Block, opts MuxOptions) []Block {
	var merged []Block
	for i, track := range tracks {
		for _, b := range track {
			if opts.TopAndBottom {
				if i%2 == 0 {
					b.Content = PlacementTop + b.Content
				} else {
					b.Content = PlacementBottom + b.Content
				}
			}
			merged = append(merged, b)
		}
	}

	if !opts.TopAndBottom && !opts.NoTimeMatching {
		merged = Align(merged, opts.Tolerance, AttrStart, opts.Width)
		merged = Align(merged, opts.Tolerance, AttrEnd, opts.Width)
	}
	return Sort(merged)
}
