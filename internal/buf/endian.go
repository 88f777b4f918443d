// Package buf contains bounds-checked slicing, endian-safe decoding and the
// byte shifting primitive every structural edit funnels through.
package buf

import "encoding/binary"

// U32At reads the little-endian uint32 at off. ok is false when the four
// bytes do not fit in b.
func U32At(b []byte, off int) (v uint32, ok bool) {
	s, ok := Slice(b, off, 4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(s), true
}

// U64At reads the little-endian uint64 at off. ok is false when the eight
// bytes do not fit in b.
func U64At(b []byte, off int) (v uint64, ok bool) {
	s, ok := Slice(b, off, 8)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(s), true
}
