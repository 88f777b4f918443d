// Package mutator is the single place where an ADT blob changes length.
//
// Apply takes a layout.Delta, moves the trailing bytes with buf.Shift and
// adjusts the node header counter named by the delta. Callers fill the
// opened region afterwards; nothing else in the module shifts bytes.
package mutator

import (
	"errors"
	"fmt"
	"math"

	"github.com/joshuapare/adtkit/adt/layout"
	"github.com/joshuapare/adtkit/internal/buf"
	"github.com/joshuapare/adtkit/internal/format"
)

var (
	// ErrInvalidDelta indicates a delta that is inconsistent with its kind or the blob.
	ErrInvalidDelta = errors.New("mutator: invalid delta")
	// ErrCounterOverflow indicates a counter that would wrap past its u32 range.
	ErrCounterOverflow = errors.New("mutator: counter overflow")
	// ErrCounterUnderflow indicates a decrement of a zero counter.
	ErrCounterUnderflow = errors.New("mutator: counter underflow")
)

// Apply resizes b according to d and returns the new blob, which may not
// share b's backing array. On error b is returned untouched.
//
// The counter offset is captured before the shift. It lies ahead of d.At,
// so the shift cannot move it.
func Apply(b []byte, d layout.Delta) ([]byte, error) {
	if err := check(b, d); err != nil {
		return b, err
	}
	counterOff := d.Counter.Node + d.Counter.Field.Offset()
	cur, err := format.CheckedReadU32(b, counterOff)
	if err != nil {
		return b, fmt.Errorf("%s: %w", d, err)
	}
	next, err := step(cur, d.Counter.Step)
	if err != nil {
		return b, fmt.Errorf("%s: %w", d, err)
	}
	out, err := buf.Shift(b, d.At, d.Len)
	if err != nil {
		return b, fmt.Errorf("%s: %w", d, err)
	}
	format.PutU32(out, counterOff, next)
	return out, nil
}

func check(b []byte, d layout.Delta) error {
	switch d.Kind {
	case layout.InsertProperty, layout.InsertNode:
		if d.Len <= 0 || d.Counter.Step != 1 {
			return fmt.Errorf("%s: %w", d, ErrInvalidDelta)
		}
	case layout.DeleteProperty:
		if d.Len >= 0 || d.Counter.Step != -1 {
			return fmt.Errorf("%s: %w", d, ErrInvalidDelta)
		}
	default:
		return fmt.Errorf("%s: %w", d, ErrInvalidDelta)
	}
	if d.Counter.Field != layout.PropertyCounter && d.Counter.Field != layout.ChildCounter {
		return fmt.Errorf("%s: %w", d, ErrInvalidDelta)
	}
	// The whole header must precede the gap.
	if d.Counter.Node < 0 || d.Counter.Node+format.NodeHeaderSize > d.At {
		return fmt.Errorf("%s: counter node overlaps the gap: %w", d, ErrInvalidDelta)
	}
	if d.At > len(b) {
		return fmt.Errorf("%s: gap past end (len %d): %w", d, len(b), buf.ErrOutOfBounds)
	}
	return nil
}

func step(cur uint32, s int) (uint32, error) {
	switch {
	case s > 0 && cur == math.MaxUint32:
		return 0, ErrCounterOverflow
	case s < 0 && cur == 0:
		return 0, ErrCounterUnderflow
	case s > 0:
		return cur + 1, nil
	default:
		return cur - 1, nil
	}
}
