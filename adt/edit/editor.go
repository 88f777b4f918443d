package edit

import (
	"io"
	"log/slog"

	"github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/pkg/types"
)

// Editor applies edit operations to ADT blobs. It holds no blob state; the
// same Editor may be reused across blobs.
type Editor struct {
	rand io.Reader
	log  *slog.Logger
}

// New creates an Editor. Nil option fields fall back to DefaultOptions.
func New(opts Options) *Editor {
	def := DefaultOptions()
	if opts.Rand == nil {
		opts.Rand = def.Rand
	}
	if opts.Logger == nil {
		opts.Logger = def.Logger
	}
	return &Editor{rand: opts.Rand, log: opts.Logger}
}

// Apply dispatches op to the matching operation.
func (e *Editor) Apply(blob []byte, op types.EditOp) ([]byte, error) {
	switch o := op.(type) {
	case types.OpZeroProperty:
		return e.ZeroProperty(blob, o.Path, o.Property)
	case types.OpRandomizeProperty:
		return e.RandomizeProperty(blob, o.Path, o.Property)
	case types.OpReplaceProperty:
		return e.ReplaceProperty(blob, o.Path, o.Property, o.Value)
	case types.OpDeleteProperty:
		return e.DeleteProperty(blob, o.Path, o.Property)
	case types.OpAddProperty:
		return e.AddProperty(blob, o.Path, o.Property, o.Value)
	case types.OpAddNode:
		return e.AddNode(blob, o.Path)
	case nil:
		return blob, types.Errorf(types.ErrKindInvalidOperation, "nil operation")
	default:
		return blob, types.Errorf(types.ErrKindInvalidOperation, "unsupported operation %T", op)
	}
}

// resolveNode returns the offset of the node at path.
func resolveNode(blob []byte, path string) (int, error) {
	node, err := adt.ResolvePath(blob, path)
	if err != nil {
		return 0, classify(err, "node %q", path)
	}
	return node, nil
}

// lookup resolves path and finds the named property of that node.
func lookup(blob []byte, path, name string) (int, adt.Property, error) {
	node, err := resolveNode(blob, path)
	if err != nil {
		return 0, adt.Property{}, err
	}
	p, err := adt.GetProperty(blob, node, name)
	if err != nil {
		return 0, adt.Property{}, classify(err, "node %q property %q", path, name)
	}
	return node, p, nil
}

func (e *Editor) logApplied(op, path string, attrs ...any) {
	e.log.Debug("applied", append([]any{"op", op, "node", path}, attrs...)...)
}
