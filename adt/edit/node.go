package edit

import (
	"errors"
	"fmt"

	"github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/adt/layout"
	"github.com/joshuapare/adtkit/adt/mutator"
	"github.com/joshuapare/adtkit/internal/format"
	"github.com/joshuapare/adtkit/pkg/types"
)

// nameField is the encoded "name" property name, shared by every new node.
var nameField = mustEncodeName(format.NameProperty)

func mustEncodeName(s string) []byte {
	raw, err := format.EncodeName(s)
	if err != nil {
		panic(err)
	}
	return raw
}

// AddNode creates the node named by path as the last child of its parent.
// The new node has one property, "name", holding the last path segment and
// a NUL, and no children. The parent must exist and path must not.
func (e *Editor) AddNode(blob []byte, path string) ([]byte, error) {
	_, err := adt.ResolvePath(blob, path)
	switch {
	case err == nil:
		return blob, types.Errorf(types.ErrKindNodeAlreadyExists, "add node %q", path)
	case !errors.Is(err, adt.ErrNodeNotFound):
		return blob, classify(err, "add node %q", path)
	}

	parentPath, leaf, err := adt.SplitParent(path)
	if err != nil {
		return blob, classify(err, "add node %q", path)
	}
	parent, err := resolveNode(blob, parentPath)
	if err != nil {
		return blob, err
	}
	d, err := layout.ForInsertNode(blob, parent, len(leaf))
	if err != nil {
		return blob, classify(err, "add node %q", path)
	}
	out, err := mutator.Apply(blob, d)
	if err != nil {
		return blob, classify(err, "add node %q", path)
	}
	if err := writeNode(out, d.At, leaf); err != nil {
		panic(fmt.Sprintf("edit: encode into opened region: %v", err))
	}
	e.logApplied(types.OpNameAddNode, path, "parent", parentPath, "delta", d.Len)
	return out, nil
}

// writeNode fills an opened region with an empty node named name.
func writeNode(b []byte, off int, name string) error {
	if err := format.EncodeNode(b, off, format.NodeHeader{PropertyCount: 1}); err != nil {
		return err
	}
	value := append([]byte(name), 0)
	_, err := format.EncodeProperty(b, adt.FirstPropertyOffset(off), nameField, value)
	return err
}
