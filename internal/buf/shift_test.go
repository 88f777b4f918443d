package buf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShiftGrow(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	out, err := Shift(b, 2, 3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 0, 0, 0, 3, 4, 5}, out)
}

func TestShiftGrowAtEnd(t *testing.T) {
	out, err := Shift([]byte{1, 2}, 2, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 0, 0}, out)
}

func TestShiftGrowReusesCapacity(t *testing.T) {
	b := make([]byte, 4, 16)
	copy(b, []byte{9, 8, 7, 6})
	out, err := Shift(b, 1, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{9, 0, 0, 8, 7, 6}, out)
	require.Same(t, &b[0], &out[0], "expected in-place growth")
}

func TestShiftShrink(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5, 6}
	out, err := Shift(b, 1, -3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 5, 6}, out)
}

func TestShiftShrinkTail(t *testing.T) {
	out, err := Shift([]byte{1, 2, 3}, 1, -2)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, out)
}

func TestShiftLengthInvariant(t *testing.T) {
	for _, tc := range []struct{ at, delta int }{
		{0, 4}, {3, 4}, {8, 1}, {0, -8}, {2, -3}, {4, 0},
	} {
		b := []byte{0, 1, 2, 3, 4, 5, 6, 7}
		out, err := Shift(b, tc.at, tc.delta)
		require.NoError(t, err, "at=%d delta=%d", tc.at, tc.delta)
		require.Len(t, out, 8+tc.delta)
		for i := 0; i < tc.at && i < len(out); i++ {
			require.Equal(t, byte(i), out[i], "prefix byte %d moved", i)
		}
	}
}

func TestShiftRejectsBadRanges(t *testing.T) {
	b := []byte{1, 2, 3}
	_, err := Shift(b, 4, 1)
	require.True(t, errors.Is(err, ErrOutOfBounds))

	_, err = Shift(b, 2, -2)
	require.True(t, errors.Is(err, ErrOutOfBounds))
	require.Equal(t, []byte{1, 2, 3}, b, "failed shift must not touch the buffer")
}
