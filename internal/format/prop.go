package format

import (
	"fmt"

	"github.com/joshuapare/adtkit/internal/buf"
)

// PropRecord models a property header and its value. The structure is
// shown below:
//
//	Offset  Size  Field
//	0x00    32    Name (NUL-terminated; bytes after the NUL are ignored)
//	0x20    4     Size (bit 31 reserved, masked off for the length)
//	0x24    n     Value bytes
//	0x24+n  pad   Zero padding to the next 4-byte boundary
type PropRecord struct {
	NameRaw []byte // name bytes up to (excluding) the first NUL
	RawSize uint32 // size field as stored, reserved bit included
	Value   []byte // sub-slice of the blob, len == Size()
}

// Size returns the value length with the reserved bit masked off.
func (p PropRecord) Size() int {
	return int(p.RawSize & PropSizeMask)
}

// Reserved reports whether the reserved high bit of the size field is set.
func (p PropRecord) Reserved() bool {
	return p.RawSize&PropSizeReservedBit != 0
}

// StoredLen returns the number of bytes the property occupies in the blob.
func (p PropRecord) StoredLen() int {
	return PropertyLen(p.Size())
}

// DecodeProperty decodes the property at off. The returned Value aliases b.
// Only the header and the value must fit; a missing trailing pad is
// reported by DecodePropertyStrict.
func DecodeProperty(b []byte, off int) (PropRecord, error) {
	field, ok := buf.Slice(b, off, PropNameSize)
	if !ok {
		return PropRecord{}, fmt.Errorf("property name at %#x: %w", off, ErrTruncated)
	}
	raw, err := CheckedReadU32(b, off+PropSizeOffset)
	if err != nil {
		return PropRecord{}, fmt.Errorf("property size: %w", err)
	}
	size := int(raw & PropSizeMask)
	value, ok := buf.Slice(b, off+PropValueOffset, size)
	if !ok {
		return PropRecord{}, fmt.Errorf("property %q value (%d bytes) at %#x: %w",
			CString(field), size, off+PropValueOffset, ErrTruncated)
	}
	return PropRecord{NameRaw: CString(field), RawSize: raw, Value: value}, nil
}

// DecodePropertyStrict is DecodeProperty plus a check that the alignment
// padding is present as well.
func DecodePropertyStrict(b []byte, off int) (PropRecord, error) {
	p, err := DecodeProperty(b, off)
	if err != nil {
		return PropRecord{}, err
	}
	if !buf.Has(b, off, p.StoredLen()) {
		return PropRecord{}, fmt.Errorf("property %q padding at %#x: %w", p.NameRaw, off, ErrTruncated)
	}
	return p, nil
}

// EncodePropertyHeader writes the name field and size at off. The name
// field is zero-filled past the name. nameRaw must already be validated by
// EncodeName.
func EncodePropertyHeader(b []byte, off int, nameRaw []byte, size int) error {
	if size < 0 || size > PropSizeMask {
		return fmt.Errorf("property size %d: %w", size, ErrValueTooLarge)
	}
	field, ok := buf.Slice(b, off, PropNameSize)
	if !ok {
		return fmt.Errorf("property name at %#x: %w", off, ErrTruncated)
	}
	clear(field)
	copy(field[:PropNameMaxLen], nameRaw)
	return CheckedPutU32(b, off+PropSizeOffset, uint32(size))
}

// EncodeProperty writes a complete property (header, value, zero padding)
// at off and returns the number of bytes written.
func EncodeProperty(b []byte, off int, nameRaw, value []byte) (int, error) {
	n := PropertyLen(len(value))
	dst, ok := buf.Slice(b, off, n)
	if !ok {
		return 0, fmt.Errorf("property at %#x (%d bytes): %w", off, n, ErrTruncated)
	}
	if err := EncodePropertyHeader(b, off, nameRaw, len(value)); err != nil {
		return 0, err
	}
	body := dst[PropValueOffset:]
	copy(body, value)
	clear(body[len(value):])
	return n, nil
}
