package edit

import (
	"fmt"
	"io"

	"github.com/joshuapare/adtkit/adt/layout"
	"github.com/joshuapare/adtkit/adt/mutator"
	"github.com/joshuapare/adtkit/internal/format"
	"github.com/joshuapare/adtkit/pkg/types"
)

// ZeroProperty overwrites every value byte of the property with zero.
// The blob length does not change.
func (e *Editor) ZeroProperty(blob []byte, path, name string) ([]byte, error) {
	_, p, err := lookup(blob, path, name)
	if err != nil {
		return blob, err
	}
	s, err := layout.ValueSpan(blob, p.Offset)
	if err != nil {
		return blob, classify(err, "zero %q:%q", path, name)
	}
	clear(blob[s.Offset:s.End()])
	e.logApplied(types.OpNameZeroProperty, path, "property", name, "size", s.Len)
	return blob, nil
}

// RandomizeProperty overwrites the property value with bytes read from the
// editor's random source. The blob length does not change.
func (e *Editor) RandomizeProperty(blob []byte, path, name string) ([]byte, error) {
	_, p, err := lookup(blob, path, name)
	if err != nil {
		return blob, err
	}
	s, err := layout.ValueSpan(blob, p.Offset)
	if err != nil {
		return blob, classify(err, "randomize %q:%q", path, name)
	}
	// Read into scratch first so a short read leaves the value untouched.
	scratch := make([]byte, s.Len)
	if _, err := io.ReadFull(e.rand, scratch); err != nil {
		return blob, fmt.Errorf("randomize %q:%q: random source: %w", path, name, err)
	}
	copy(blob[s.Offset:s.End()], scratch)
	e.logApplied(types.OpNameRandomizeProperty, path, "property", name, "size", s.Len)
	return blob, nil
}

// ReplaceProperty writes value over the start of an existing property
// value. The value must not be longer than the stored size. When shorter,
// a single NUL follows it and the rest of the old value stays as it was.
func (e *Editor) ReplaceProperty(blob []byte, path, name, value string) ([]byte, error) {
	_, p, err := lookup(blob, path, name)
	if err != nil {
		return blob, err
	}
	s, err := layout.ValueSpan(blob, p.Offset)
	if err != nil {
		return blob, classify(err, "replace %q:%q", path, name)
	}
	if len(value) > s.Len {
		return blob, types.Errorf(types.ErrKindInvalidOperation,
			"replace %q:%q: value is %d bytes, property holds %d", path, name, len(value), s.Len)
	}
	n := copy(blob[s.Offset:s.End()], value)
	if n < s.Len {
		blob[s.Offset+n] = 0
	}
	e.logApplied(types.OpNameReplaceProperty, path, "property", name, "written", n)
	return blob, nil
}

// DeleteProperty removes the property and its padding from the node.
func (e *Editor) DeleteProperty(blob []byte, path, name string) ([]byte, error) {
	node, p, err := lookup(blob, path, name)
	if err != nil {
		return blob, err
	}
	d, err := layout.ForDeleteProperty(blob, node, p.Offset)
	if err != nil {
		return blob, classify(err, "delete %q:%q", path, name)
	}
	out, err := mutator.Apply(blob, d)
	if err != nil {
		return blob, classify(err, "delete %q:%q", path, name)
	}
	e.logApplied(types.OpNameDeleteProperty, path, "property", name, "delta", d.Len)
	return out, nil
}

// AddProperty inserts a new property after the node's existing properties
// and ahead of its children. Name and value are validated before the blob
// is touched. An existing property of the same name is not replaced; the
// new one is appended and lookups keep returning the first.
func (e *Editor) AddProperty(blob []byte, path, name string, value types.Value) ([]byte, error) {
	raw, err := format.EncodeName(name)
	if err != nil {
		return blob, classify(err, "add property %q to %q", name, path)
	}
	data, err := EncodeValue(value)
	if err != nil {
		return blob, classify(err, "add property %q to %q", name, path)
	}
	node, err := resolveNode(blob, path)
	if err != nil {
		return blob, err
	}
	d, err := layout.ForInsertProperty(blob, node, len(data))
	if err != nil {
		return blob, classify(err, "add property %q to %q", name, path)
	}
	out, err := mutator.Apply(blob, d)
	if err != nil {
		return blob, classify(err, "add property %q to %q", name, path)
	}
	if _, err := format.EncodeProperty(out, d.At, raw, data); err != nil {
		// The region was sized for exactly this property.
		panic(fmt.Sprintf("edit: encode into opened region: %v", err))
	}
	e.logApplied(types.OpNameAddProperty, path, "property", name, "type", value.Type, "delta", d.Len)
	return out, nil
}
