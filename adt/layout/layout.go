// Package layout computes where a structural edit lands and how large it is
// before any byte moves.
//
// Each calculation returns a Delta: the offset of the gap to open or close,
// its signed length and the header counter that must change with it. The
// Delta is consumed by the mutator package, which is the only code that
// shifts bytes. Overwrites that never resize are described by a Span.
//
// Placement rules:
//
//	insert property into N   at FirstChildOffset(N), +PropertyLen(size),  N.property_count++
//	delete property P of N   at P,                   -PropertyLen(P.size), N.property_count--
//	insert child under P     at NextSiblingOffset(P), +NodeLen(len(name)), P.child_count++
//
// The counter's node always lies before the gap, so its offset survives
// the shift.
package layout

import (
	"errors"
	"fmt"

	"github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/internal/format"
)

// ErrOutsideNode indicates a property offset that does not belong to the node.
var ErrOutsideNode = errors.New("layout: property outside node")

// Kind names the structural edit a Delta describes.
type Kind uint8

const (
	// InsertProperty opens a gap for a new property.
	InsertProperty Kind = iota + 1
	// DeleteProperty closes the gap of an existing property.
	DeleteProperty
	// InsertNode opens a gap for a new child node.
	InsertNode
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case InsertProperty:
		return "InsertProperty"
	case DeleteProperty:
		return "DeleteProperty"
	case InsertNode:
		return "InsertNode"
	default:
		return "Unknown"
	}
}

// CounterField selects one of the two node header counters.
type CounterField uint8

const (
	PropertyCounter CounterField = iota + 1
	ChildCounter
)

// Offset returns the field's offset inside the node header.
func (f CounterField) Offset() int {
	if f == ChildCounter {
		return format.NodeChildCountOffset
	}
	return format.NodePropertyCountOffset
}

// String returns the string representation of the CounterField.
func (f CounterField) String() string {
	switch f {
	case PropertyCounter:
		return "property_count"
	case ChildCounter:
		return "child_count"
	default:
		return "unknown"
	}
}

// Counter identifies the header counter an edit adjusts.
type Counter struct {
	Node  int // offset of the node whose header changes
	Field CounterField
	Step  int // +1 or -1
}

// Delta describes one resize of the blob.
type Delta struct {
	Kind    Kind
	At      int // gap offset
	Len     int // > 0 grows, < 0 shrinks
	Counter Counter
}

// Region returns the range an insertion opens, [At, At+Len). It is empty
// for deletions.
func (d Delta) Region() (int, int) {
	if d.Len <= 0 {
		return d.At, d.At
	}
	return d.At, d.At + d.Len
}

func (d Delta) String() string {
	return fmt.Sprintf("%s at %#x len %+d (%s@%#x %+d)",
		d.Kind, d.At, d.Len, d.Counter.Field, d.Counter.Node, d.Counter.Step)
}

// Span is an in-place byte range.
type Span struct {
	Offset int
	Len    int
}

// End returns Offset+Len.
func (s Span) End() int {
	return s.Offset + s.Len
}

// ForInsertProperty places a new property holding valueSize bytes after the
// node's existing properties, ahead of any child.
func ForInsertProperty(b []byte, node, valueSize int) (Delta, error) {
	if valueSize < 0 || valueSize > format.PropSizeMask {
		return Delta{}, fmt.Errorf("value size %d: %w", valueSize, format.ErrValueTooLarge)
	}
	at, err := adt.FirstChildOffset(b, node)
	if err != nil {
		return Delta{}, fmt.Errorf("insert property: %w", err)
	}
	return Delta{
		Kind:    InsertProperty,
		At:      at,
		Len:     format.PropertyLen(valueSize),
		Counter: Counter{Node: node, Field: PropertyCounter, Step: 1},
	}, nil
}

// ForDeleteProperty removes the property at prop from node.
func ForDeleteProperty(b []byte, node, prop int) (Delta, error) {
	first := adt.FirstPropertyOffset(node)
	end, err := adt.FirstChildOffset(b, node)
	if err != nil {
		return Delta{}, fmt.Errorf("delete property: %w", err)
	}
	if prop < first || prop >= end {
		return Delta{}, fmt.Errorf("property at %#x, node %#x properties [%#x,%#x): %w",
			prop, node, first, end, ErrOutsideNode)
	}
	next, err := adt.NextPropertyOffset(b, prop)
	if err != nil {
		return Delta{}, fmt.Errorf("delete property: %w", err)
	}
	return Delta{
		Kind:    DeleteProperty,
		At:      prop,
		Len:     -(next - prop),
		Counter: Counter{Node: node, Field: PropertyCounter, Step: -1},
	}, nil
}

// ForInsertNode places a new child, carrying a single name property of
// nameLen bytes plus its NUL, after the parent's last descendant.
func ForInsertNode(b []byte, parent, nameLen int) (Delta, error) {
	if nameLen < 0 || nameLen+1 > format.PropSizeMask {
		return Delta{}, fmt.Errorf("node name length %d: %w", nameLen, format.ErrValueTooLarge)
	}
	at, err := adt.NextSiblingOffset(b, parent)
	if err != nil {
		return Delta{}, fmt.Errorf("insert node: %w", err)
	}
	return Delta{
		Kind:    InsertNode,
		At:      at,
		Len:     format.NodeLen(nameLen),
		Counter: Counter{Node: parent, Field: ChildCounter, Step: 1},
	}, nil
}

// ValueSpan returns the value bytes of the property at prop, padding excluded.
func ValueSpan(b []byte, prop int) (Span, error) {
	p, err := format.DecodeProperty(b, prop)
	if err != nil {
		return Span{}, err
	}
	return Span{Offset: prop + format.PropValueOffset, Len: p.Size()}, nil
}
