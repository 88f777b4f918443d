package buf

import (
	"fmt"
	"slices"
)

// Shift opens or closes a gap at offset at and returns the resized buffer,
// which may share b's backing array.
//
// delta > 0: the buffer grows by delta, [at, len) moves right by delta and
// [at, at+delta) is zero-filled for the caller to overwrite.
//
// delta < 0: [at-delta, len) moves left onto at and the buffer shrinks by
// -delta. The removed range must lie entirely inside the buffer.
//
// The returned length is always len(b)+delta. Offsets below at are stable;
// every offset >= at held by the caller is invalidated.
func Shift(b []byte, at, delta int) ([]byte, error) {
	n := len(b)
	if at < 0 || at > n {
		return b, fmt.Errorf("shift at %d (len %d): %w", at, n, ErrOutOfBounds)
	}
	switch {
	case delta == 0:
		return b, nil
	case delta > 0:
		newLen, ok := AddOverflowSafe(n, delta)
		if !ok {
			return b, fmt.Errorf("shift grow by %d: overflow", delta)
		}
		b = slices.Grow(b, delta)[:newLen]
		copy(b[at+delta:], b[at:n])
		clear(b[at : at+delta])
		return b, nil
	default:
		gap := -delta
		if _, err := CheckRange(n, at, gap); err != nil {
			return b, fmt.Errorf("shift remove %d at %d: %w", gap, at, err)
		}
		copy(b[at:], b[at+gap:])
		clear(b[n-gap:])
		return b[:n-gap], nil
	}
}
