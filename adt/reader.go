package adt

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/adtkit/internal/format"
)

// RootOffset is the offset of the root node in every blob.
const RootOffset = 0

// Property is a decoded view of one property. Value aliases the blob and
// is only valid until the next edit.
type Property struct {
	Offset   int    // offset of the property header
	Name     string // decoded name
	Size     int    // value length, reserved bit masked off
	Reserved bool   // reserved high bit of the size field
	Value    []byte
}

// ValueOffset returns the offset of the first value byte.
func (p Property) ValueOffset() int {
	return p.Offset + format.PropValueOffset
}

// End returns the offset just past the property's padding.
func (p Property) End() int {
	return p.Offset + format.PropertyLen(p.Size)
}

// String returns the value up to its first NUL.
func (p Property) String() string {
	return string(format.CString(p.Value))
}

// PropertyCount reads the property counter of the node at off.
func PropertyCount(b []byte, node int) (uint32, error) {
	h, err := format.DecodeNode(b, node)
	if err != nil {
		return 0, err
	}
	return h.PropertyCount, nil
}

// ChildCount reads the child counter of the node at off.
func ChildCount(b []byte, node int) (uint32, error) {
	h, err := format.DecodeNode(b, node)
	if err != nil {
		return 0, err
	}
	return h.ChildCount, nil
}

// FirstPropertyOffset returns the offset just past the node header.
func FirstPropertyOffset(node int) int {
	return node + format.NodeHeaderSize
}

// NextPropertyOffset returns the offset of the property following the one at prop.
func NextPropertyOffset(b []byte, prop int) (int, error) {
	p, err := format.DecodeProperty(b, prop)
	if err != nil {
		return 0, err
	}
	return prop + p.StoredLen(), nil
}

// FirstChildOffset returns the offset just past the node's last property,
// which is where its first child starts (or would start).
func FirstChildOffset(b []byte, node int) (int, error) {
	h, err := format.DecodeNode(b, node)
	if err != nil {
		return 0, err
	}
	return skipProperties(b, FirstPropertyOffset(node), h.PropertyCount)
}

func skipProperties(b []byte, off int, n uint32) (int, error) {
	for i := uint32(0); i < n; i++ {
		next, err := NextPropertyOffset(b, off)
		if err != nil {
			return 0, fmt.Errorf("property %d of %d: %w", i, n, err)
		}
		off = next
	}
	return off, nil
}

// NextSiblingOffset returns the offset just past the node's whole subtree.
//
// A subtree is laid out in pre-order, so skipping it means skipping a run
// of consecutive nodes whose length grows by each header's child count.
func NextSiblingOffset(b []byte, node int) (int, error) {
	off := node
	for remaining := 1; remaining > 0; remaining-- {
		h, err := format.DecodeNode(b, off)
		if err != nil {
			return 0, err
		}
		off, err = skipProperties(b, FirstPropertyOffset(off), h.PropertyCount)
		if err != nil {
			return 0, err
		}
		remaining += int(h.ChildCount)
	}
	return off, nil
}

// GetProperty finds a property of the node at off by name. Only the node's
// own properties are searched.
func GetProperty(b []byte, node int, name string) (Property, error) {
	h, err := format.DecodeNode(b, node)
	if err != nil {
		return Property{}, err
	}
	needle, err := format.EncodeName(name)
	if err != nil {
		return Property{}, fmt.Errorf("%q: %w", name, ErrPropertyNotFound)
	}
	off := FirstPropertyOffset(node)
	for i := uint32(0); i < h.PropertyCount; i++ {
		p, err := format.DecodeProperty(b, off)
		if err != nil {
			return Property{}, err
		}
		if bytes.Equal(p.NameRaw, needle) {
			return toProperty(off, p), nil
		}
		off += p.StoredLen()
	}
	return Property{}, fmt.Errorf("%q: %w", name, ErrPropertyNotFound)
}

// Properties returns every property of the node at off, in stored order.
func Properties(b []byte, node int) ([]Property, error) {
	h, err := format.DecodeNode(b, node)
	if err != nil {
		return nil, err
	}
	out := make([]Property, 0, min(int(h.PropertyCount), len(b)/format.PropHeaderSize))
	off := FirstPropertyOffset(node)
	for i := uint32(0); i < h.PropertyCount; i++ {
		p, err := format.DecodeProperty(b, off)
		if err != nil {
			return nil, fmt.Errorf("property %d of %d: %w", i, h.PropertyCount, err)
		}
		out = append(out, toProperty(off, p))
		off += p.StoredLen()
	}
	return out, nil
}

// Children returns the offsets of the node's direct children.
func Children(b []byte, node int) ([]int, error) {
	h, err := format.DecodeNode(b, node)
	if err != nil {
		return nil, err
	}
	off, err := skipProperties(b, FirstPropertyOffset(node), h.PropertyCount)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, min(int(h.ChildCount), len(b)/format.NodeHeaderSize))
	for i := uint32(0); i < h.ChildCount; i++ {
		out = append(out, off)
		if off, err = NextSiblingOffset(b, off); err != nil {
			return nil, fmt.Errorf("child %d of %d: %w", i, h.ChildCount, err)
		}
	}
	return out, nil
}

// NodeName returns the value of the node's "name" property up to its NUL.
func NodeName(b []byte, node int) (string, error) {
	p, err := GetProperty(b, node, format.NameProperty)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

// IsCompatible reports whether compat is one of the NUL-separated strings
// of the node's "compatible" property.
func IsCompatible(b []byte, node int, compat string) (bool, error) {
	p, err := GetProperty(b, node, format.CompatibleProperty)
	if err != nil {
		return false, err
	}
	for _, s := range bytes.Split(p.Value, []byte{0}) {
		if len(s) > 0 && string(s) == compat {
			return true, nil
		}
	}
	return false, nil
}

func toProperty(off int, p format.PropRecord) Property {
	return Property{
		Offset:   off,
		Name:     format.DecodeName(p.NameRaw),
		Size:     p.Size(),
		Reserved: p.Reserved(),
		Value:    p.Value,
	}
}
