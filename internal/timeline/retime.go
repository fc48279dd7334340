package timeline

import (
	"iter"
	"math"
	"time"
)

// ShiftBy moves every cue by offset, which may be negative.
func ShiftBy(seq iter.Seq[Block], offset time.Duration) iter.Seq[Block] {
	return Reindex(func(yield func(Block) bool) {
		for b := range seq {
			if !yield(b.shifted(offset)) {
				return
			}
		}
	})
}

// Correction is an affine time correction in milliseconds:
// corrected = round(raw*Angular + Linear).
type Correction struct {
	Angular float64
	Linear  float64
}

// NewCorrection derives the correction mapping fromStart to toStart and
// fromEnd to toEnd.
func NewCorrection(
	fromStart, toStart, fromEnd, toEnd time.Duration,
) (Correction, error) {
	if fromEnd == fromStart {
		return Correction{}, &DegenerateReferenceError{From: fromStart}
	}

	angular := (millis(toEnd) - millis(toStart)) / (millis(fromEnd) - millis(fromStart))
	return Correction{
		Angular: angular,
		Linear:  millis(toEnd) - angular*millis(fromEnd),
	}, nil
}

// Apply corrects d, rounding to the nearest millisecond.
func (c Correction) Apply(d time.Duration) time.Duration {
	ms := math.Round(millis(d)*c.Angular + c.Linear)
	return time.Duration(ms) * time.Millisecond
}

// Retime applies c to both timestamps of every cue.
func Retime(seq iter.Seq[Block], c Correction) iter.Seq[Block] {
	return Reindex(func(yield func(Block) bool) {
		for b := range seq {
			b.Start = c.Apply(b.Start)
			b.End = c.Apply(b.End)
			if !yield(b) {
				return
			}
		}
	})
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
