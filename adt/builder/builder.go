// Package builder constructs well-formed ADT blobs from an in-memory tree.
//
// It is the write-side counterpart of the adt package and is used to
// produce fixtures and fresh blobs:
//
//	b := builder.New("device-tree")
//	b.SetString([]string{"chosen"}, "firmware-version", "iBoot-1234")
//	b.SetU32([]string{"arm-io", "uart0"}, "reg", 0x35200000)
//	blob, err := b.Bytes()
//
// Every node created through a path gets a "name" property holding its
// path segment, placed first so path resolution finds it.
package builder

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/adtkit/internal/format"
)

// Prop is one property of a Node.
type Prop struct {
	Name     string
	Value    []byte
	Reserved bool // sets the reserved high bit of the size field
}

// Node is an in-memory tree node.
type Node struct {
	Props    []Prop
	Children []*Node
}

// Set adds or replaces a property.
func (n *Node) Set(name string, value []byte) *Node {
	for i := range n.Props {
		if n.Props[i].Name == name {
			n.Props[i].Value = value
			return n
		}
	}
	n.Props = append(n.Props, Prop{Name: name, Value: value})
	return n
}

// Child returns the first child whose name property equals name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		for _, p := range c.Props {
			if p.Name == format.NameProperty && string(format.CString(p.Value)) == name {
				return c
			}
		}
	}
	return nil
}

// AddChild appends a new child carrying only a name property.
func (n *Node) AddChild(name string) *Node {
	c := &Node{}
	c.Set(format.NameProperty, cstring(name))
	n.Children = append(n.Children, c)
	return c
}

// Builder accumulates a tree and encodes it on demand.
type Builder struct {
	root *Node
}

// New creates a builder whose root is named rootName. An empty rootName
// leaves the root without a name property.
func New(rootName string) *Builder {
	root := &Node{}
	if rootName != "" {
		root.Set(format.NameProperty, cstring(rootName))
	}
	return &Builder{root: root}
}

// Root returns the root node for direct manipulation.
func (b *Builder) Root() *Node {
	return b.root
}

// EnsureNode creates every missing node along path and returns the last.
func (b *Builder) EnsureNode(path []string) *Node {
	n := b.root
	for _, seg := range path {
		c := n.Child(seg)
		if c == nil {
			c = n.AddChild(seg)
		}
		n = c
	}
	return n
}

// SetBytes sets a raw property value.
func (b *Builder) SetBytes(path []string, name string, value []byte) {
	b.EnsureNode(path).Set(name, value)
}

// SetString sets a NUL-terminated string property.
func (b *Builder) SetString(path []string, name, value string) {
	b.SetBytes(path, name, cstring(value))
}

// SetU32 sets a 4-byte little-endian property.
func (b *Builder) SetU32(path []string, name string, value uint32) {
	b.SetBytes(path, name, binary.LittleEndian.AppendUint32(nil, value))
}

// SetU64 sets an 8-byte little-endian property.
func (b *Builder) SetU64(path []string, name string, value uint64) {
	b.SetBytes(path, name, binary.LittleEndian.AppendUint64(nil, value))
}

// Bytes encodes the tree.
func (b *Builder) Bytes() ([]byte, error) {
	return Encode(b.root)
}

// Encode serialises n and its subtree.
func Encode(n *Node) ([]byte, error) {
	out := make([]byte, 0, encodedLen(n))
	return appendNode(out, n)
}

func encodedLen(n *Node) int {
	size := format.NodeHeaderSize
	for _, p := range n.Props {
		size += format.PropertyLen(len(p.Value))
	}
	for _, c := range n.Children {
		size += encodedLen(c)
	}
	return size
}

func appendNode(out []byte, n *Node) ([]byte, error) {
	out = binary.LittleEndian.AppendUint32(out, uint32(len(n.Props)))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(n.Children)))
	for _, p := range n.Props {
		raw, err := format.EncodeName(p.Name)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		off := len(out)
		out = append(out, make([]byte, format.PropertyLen(len(p.Value)))...)
		if _, err := format.EncodeProperty(out, off, raw, p.Value); err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		if p.Reserved {
			size := format.ReadU32(out, off+format.PropSizeOffset)
			format.PutU32(out, off+format.PropSizeOffset, size|format.PropSizeReservedBit)
		}
	}
	for _, c := range n.Children {
		var err error
		if out, err = appendNode(out, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func cstring(s string) []byte {
	return append([]byte(s), 0)
}
