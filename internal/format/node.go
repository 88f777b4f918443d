package format

import "fmt"

// NodeHeader captures the two counters that open every node.
type NodeHeader struct {
	PropertyCount uint32
	ChildCount    uint32
}

// DecodeNode reads the node header at off with bounds checking.
func DecodeNode(b []byte, off int) (NodeHeader, error) {
	props, err := CheckedReadU32(b, off+NodePropertyCountOffset)
	if err != nil {
		return NodeHeader{}, fmt.Errorf("node property count: %w", err)
	}
	children, err := CheckedReadU32(b, off+NodeChildCountOffset)
	if err != nil {
		return NodeHeader{}, fmt.Errorf("node child count: %w", err)
	}
	return NodeHeader{PropertyCount: props, ChildCount: children}, nil
}

// EncodeNode writes h at off.
func EncodeNode(b []byte, off int, h NodeHeader) error {
	if err := CheckedPutU32(b, off+NodePropertyCountOffset, h.PropertyCount); err != nil {
		return fmt.Errorf("node property count: %w", err)
	}
	if err := CheckedPutU32(b, off+NodeChildCountOffset, h.ChildCount); err != nil {
		return fmt.Errorf("node child count: %w", err)
	}
	return nil
}
