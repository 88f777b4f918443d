package buf

import (
	"errors"
	"fmt"
	"math"
)

// ErrOutOfBounds indicates an offset or range outside the buffer.
var ErrOutOfBounds = errors.New("buf: out of bounds")

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, ok := Slice(b, off, n)
	return ok
}

// CheckRange validates [off, off+n) against a buffer of bufLen bytes and
// returns the end offset.
func CheckRange(bufLen, off, n int) (int, error) {
	if off < 0 || n < 0 {
		return 0, fmt.Errorf("range [%d,+%d): %w", off, n, ErrOutOfBounds)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", off, n)
	}
	if end > bufLen {
		return 0, fmt.Errorf("range [%d,%d) > len=%d: %w", off, end, bufLen, ErrOutOfBounds)
	}
	return end, nil
}
