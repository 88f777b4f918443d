package batch

import (
	"slices"

	"github.com/joshuapare/adtkit/pkg/types"
)

// Handler turns a descriptor into a typed operation.
type Handler interface {
	// Help returns a one-line description for listings.
	Help() string
	// Decode validates the descriptor's fields for this operation.
	Decode(d Descriptor) (types.EditOp, error)
}

type handler struct {
	help   string
	decode func(Descriptor) (types.EditOp, error)
}

func (h handler) Help() string { return h.help }
func (h handler) Decode(d Descriptor) (types.EditOp, error) { return h.decode(d) }

// Registry maps operation names to handlers. It is immutable once built.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns the registry of the six built-in operations.
func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{
		types.OpNameZeroProperty: handler{
			help: "Writes 0's to the given property value",
			decode: func(d Descriptor) (types.EditOp, error) {
				node, prop, err := nodeAndProperty(d)
				return types.OpZeroProperty{Path: node, Property: prop}, err
			},
		},
		types.OpNameRandomizeProperty: handler{
			help: "Randomizes a property value in the given adt",
			decode: func(d Descriptor) (types.EditOp, error) {
				node, prop, err := nodeAndProperty(d)
				return types.OpRandomizeProperty{Path: node, Property: prop}, err
			},
		},
		types.OpNameReplaceProperty: handler{
			help:   "Replaces a property value with a string no longer than the current value",
			decode: decodeReplace,
		},
		types.OpNameDeleteProperty: handler{
			help: "Removes a property from the given node",
			decode: func(d Descriptor) (types.EditOp, error) {
				node, prop, err := nodeAndProperty(d)
				return types.OpDeleteProperty{Path: node, Property: prop}, err
			},
		},
		types.OpNameAddProperty: handler{
			help:   "Adds a new property to the provided node in the ADT",
			decode: decodeAddProperty,
		},
		types.OpNameAddNode: handler{
			help: "Adds the given node to the adt in the specified path. If the parent node doesn't exist it fails",
			decode: func(d Descriptor) (types.EditOp, error) {
				node, ok := d.node()
				if !ok {
					return nil, types.Errorf(types.ErrKindInvalidOperation, "%s: missing node", d.Name)
				}
				return types.OpAddNode{Path: node}, nil
			},
		},
	}}
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered operation names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Decode finds the descriptor's handler and decodes it.
func (r *Registry) Decode(d Descriptor) (types.EditOp, error) {
	h, ok := r.handlers[d.Name]
	if !ok {
		return nil, types.Errorf(types.ErrKindInvalidOperation, "unknown operation %q", d.Name)
	}
	op, err := h.Decode(d)
	if err != nil {
		return nil, err
	}
	return op, nil
}

// DecodeEntry checks the entry's name against the registry, then decodes
// its fields and the operation. Both failures are InvalidOperation.
func (r *Registry) DecodeEntry(e Entry) (types.EditOp, error) {
	if _, ok := r.handlers[e.Name]; !ok {
		return nil, types.Errorf(types.ErrKindInvalidOperation, "unknown operation %q", e.Name)
	}
	d, err := e.Descriptor()
	if err != nil {
		return nil, err
	}
	return r.Decode(d)
}

func nodeAndProperty(d Descriptor) (string, string, error) {
	node, ok := d.node()
	if !ok {
		return "", "", types.Errorf(types.ErrKindInvalidOperation, "%s: missing node", d.Name)
	}
	prop, ok := d.property()
	if !ok {
		return "", "", types.Errorf(types.ErrKindInvalidOperation, "%s: missing property", d.Name)
	}
	return node, prop, nil
}

func decodeReplace(d Descriptor) (types.EditOp, error) {
	node, prop, err := nodeAndProperty(d)
	if err != nil {
		return nil, err
	}
	if d.Value == nil {
		return nil, types.Errorf(types.ErrKindInvalidOperation, "%s: missing value", d.Name)
	}
	if !d.Value.Plain() {
		return nil, types.Errorf(types.ErrKindInvalidOperation, "%s: only string values can replace a property", d.Name)
	}
	return types.OpReplaceProperty{Path: node, Property: prop, Value: d.Value.Text}, nil
}

func decodeAddProperty(d Descriptor) (types.EditOp, error) {
	node, prop, err := nodeAndProperty(d)
	if err != nil {
		return nil, err
	}
	if d.Value == nil {
		return nil, types.Errorf(types.ErrKindInvalidOperation, "%s: missing value", d.Name)
	}
	v, err := d.Value.Value()
	if err != nil {
		return nil, types.Wrap(types.ErrKindInvalidOperation, err, "%s: value", d.Name)
	}
	return types.OpAddProperty{Path: node, Property: prop, Value: v}, nil
}
