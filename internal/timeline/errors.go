package timeline

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidRange is matched by every *InvalidRangeError.
	ErrInvalidRange = errors.New("invalid time range")

	// ErrDegenerateReference is matched by every *DegenerateReferenceError.
	ErrDegenerateReference = errors.New("degenerate reference points")

	// ErrMalformedBlock is matched by every *MalformedBlockError.
	ErrMalformedBlock = errors.New("malformed block")
)

// InvalidRangeError reports a cue or window whose end does not come after its start.
type InvalidRangeError struct {
	Start time.Duration
	End   time.Duration
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf(
		"invalid range %s -> %s: end must come after start",
		e.Start,
		e.End,
	)
}

func (e *InvalidRangeError) Unwrap() error {
	return ErrInvalidRange
}

// DegenerateReferenceError reports affine reference points that share the
// same source timestamp, which leaves the correction slope undefined.
type DegenerateReferenceError struct {
	From time.Duration
}

func (e *DegenerateReferenceError) Error() string {
	return fmt.Sprintf(
		"reference points both start at %s: cannot derive a correction",
		e.From,
	)
}

func (e *DegenerateReferenceError) Unwrap() error {
	return ErrDegenerateReference
}

// MalformedBlockError is raised by parsers and strict composers for a cue that
// cannot be read or written. Line is 0 when the cue did not come from text.
type MalformedBlockError struct {
	Line   int
	Index  int
	Reason string
}

func (e *MalformedBlockError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("malformed block at line %d: %s", e.Line, e.Reason)
	case e.Index > 0:
		return fmt.Sprintf("malformed block %d: %s", e.Index, e.Reason)
	default:
		return fmt.Sprintf("malformed block: %s", e.Reason)
	}
}

func (e *MalformedBlockError) Unwrap() error {
	return ErrMalformedBlock
}
