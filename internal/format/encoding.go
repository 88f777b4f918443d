package format

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/adtkit/internal/buf"
)

// Binary encoding utilities for the little-endian ADT layout.
//
// The Put helpers panic on short buffers and are only used after the caller
// has validated bounds. ReadU32 and ReadU64 yield 0 past the end; the
// Checked variants return ErrTruncated.

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU32 reads the little-endian uint32 at off, or 0 when it does not fit.
func ReadU32(b []byte, off int) uint32 {
	v, _ := buf.U32At(b, off)
	return v
}

// ReadU64 reads the little-endian uint64 at off, or 0 when it does not fit.
func ReadU64(b []byte, off int) uint64 {
	v, _ := buf.U64At(b, off)
	return v
}

// CheckedReadU32 reads a little-endian uint32 at off, failing with
// ErrTruncated when fewer than 4 bytes remain.
func CheckedReadU32(b []byte, off int) (uint32, error) {
	v, ok := buf.U32At(b, off)
	if !ok {
		return 0, fmt.Errorf("u32 at %#x: %w (len %d)", off, ErrTruncated, len(b))
	}
	return v, nil
}

// CheckedPutU32 writes a little-endian uint32 at off, failing with
// ErrTruncated when fewer than 4 bytes remain.
func CheckedPutU32(b []byte, off int, v uint32) error {
	s, ok := buf.Slice(b, off, 4)
	if !ok {
		return fmt.Errorf("u32 at %#x: %w (len %d)", off, ErrTruncated, len(b))
	}
	binary.LittleEndian.PutUint32(s, v)
	return nil
}
