package buf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadAt(t *testing.T) {
	data := []byte{0xff, 0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	tests := []struct {
		name string
		off  int
		u32  uint32
		u64  uint64
		ok32 bool
		ok64 bool
	}{
		{name: "start", off: 0, u32: 0x452301ff, u64: 0xcdab8967452301ff, ok32: true, ok64: true},
		{name: "unaligned", off: 1, u32: 0x67452301, u64: 0xefcdab8967452301, ok32: true, ok64: true},
		{name: "u32 only", off: 5, u32: 0xefcdab89, ok32: true},
		{name: "short", off: 7},
		{name: "negative", off: -1},
		{name: "past end", off: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v32, ok := U32At(data, tt.off)
			assert.Equal(t, tt.ok32, ok)
			assert.Equal(t, tt.u32, v32)
			v64, ok := U64At(data, tt.off)
			assert.Equal(t, tt.ok64, ok)
			assert.Equal(t, tt.u64, v64)
		})
	}
}
