// Package format houses low-level codecs for the ADT (Apple device tree)
// blob layout. The goal is to keep the byte-level encoding focused,
// allocation-free where possible, and independent from the traversal and
// editing packages so those can reason in offsets rather than bytes.
//
// Layout (all integers little-endian):
//
//	Node header
//	  0x00  4   Property count
//	  0x04  4   Child count
//	  0x08  ... property_count properties, then child_count child nodes
//
//	Property
//	  0x00  32  Name (NUL-terminated, zero-filled on write)
//	  0x20  4   Value size (bit 31 reserved)
//	  0x24  n   Value bytes, zero-padded to a 4-byte boundary
package format

const (
	// NodeHeaderSize is the size of the node header (two u32 counters).
	NodeHeaderSize = 8

	// NodePropertyCountOffset is the offset of the property counter.
	NodePropertyCountOffset = 0x00

	// NodeChildCountOffset is the offset of the child counter.
	NodeChildCountOffset = 0x04

	// PropNameSize is the width of the fixed name field.
	PropNameSize = 32

	// PropNameMaxLen is the longest name that still leaves room for the
	// terminating NUL.
	PropNameMaxLen = PropNameSize - 1

	// PropSizeOffset is the offset of the value size field.
	PropSizeOffset = 0x20

	// PropHeaderSize is the size of the property header (name + size).
	PropHeaderSize = 0x24

	// PropValueOffset is where the value bytes start.
	PropValueOffset = PropHeaderSize

	// PropSizeMask extracts the value length from the raw size field.
	PropSizeMask = 0x7FFFFFFF

	// PropSizeReservedBit is the reserved high bit of the size field.
	PropSizeReservedBit = 0x80000000

	// Alignment is the boundary property values are padded to.
	Alignment = 4

	// AlignmentMask is Alignment - 1.
	AlignmentMask = Alignment - 1
)

// Well-known property names.
const (
	// NameProperty holds a node's own name and drives path resolution.
	NameProperty = "name"

	// CompatibleProperty holds NUL-separated compatible strings.
	CompatibleProperty = "compatible"
)
