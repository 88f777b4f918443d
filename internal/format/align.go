package format

// Align4 returns n aligned up to the next 4-byte boundary.
// Property values are padded to this boundary; the pad bytes are not
// counted in the size field.
//
// Example:
//
//	Align4(0) = 0
//	Align4(1) = 4
//	Align4(4) = 4
//	Align4(5) = 8
func Align4(n int) int {
	return (n + AlignmentMask) & ^AlignmentMask
}

// PropertyLen returns the stored length of a property whose value is size
// bytes long: header plus aligned value.
func PropertyLen(size int) int {
	return PropHeaderSize + Align4(size)
}

// NodeLen returns the stored length of a node that carries only a name
// property of nameLen bytes (without the terminating NUL).
func NodeLen(nameLen int) int {
	return NodeHeaderSize + PropertyLen(nameLen+1)
}
