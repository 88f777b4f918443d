package batch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/adtkit/pkg/types"
)

// Descriptor is one entry of a batch file. Fields not used by the named
// operation are ignored.
type Descriptor struct {
	Name     string     `json:"name" yaml:"name" jsonschema:"enum=zero_out_property,enum=randomize_property,enum=replace_property,enum=delete_property,enum=add_property,enum=add_node" jsonschema_description:"Operation to apply."`
	Node     *string    `json:"node,omitempty" yaml:"node,omitempty" jsonschema_description:"Absolute node path such as /arm-io/uart0. For add_node, the path of the node to create."`
	Property *string    `json:"property,omitempty" yaml:"property,omitempty" jsonschema_description:"Property name, at most 31 bytes."`
	Value    *ValueSpec `json:"value,omitempty" yaml:"value,omitempty" jsonschema_description:"New value. replace_property takes a plain string; add_property also accepts a typed object."`
}

// ValueSpec is the value field of a descriptor: either a plain string or an
// object {"type": T, "contents": C} where C is a string, or a list of
// strings when T is u64[].
type ValueSpec struct {
	Type   string   // empty for a plain string
	Text   string   // plain string or scalar contents
	Items  []string // list contents
	IsList bool     // contents was given as a list
}

var (
	errValueShape      = errors.New("value must be a string or an object with type and contents")
	errMissingType     = errors.New("value object has no string type")
	errMissingContents = errors.New("value object has no contents")
	errContentsShape   = errors.New("contents must be a string or a list of strings")
)

// Plain reports whether the value was given as a bare string.
func (v ValueSpec) Plain() bool {
	return v.Type == ""
}

// Value converts v into a types.Value. The contents shape must match
// the type: u64[] wants a list, every other type a single string.
func (v ValueSpec) Value() (types.Value, error) {
	if v.Plain() {
		return types.StringValue(v.Text), nil
	}
	vt, err := types.ParseValueType(v.Type)
	if err != nil {
		return types.Value{}, err
	}
	if (vt == types.ValueU64Array) != v.IsList {
		return types.Value{}, types.Wrap(types.ErrKindInvalidOperation, errContentsShape, "type %s", vt)
	}
	return types.Value{Type: vt, Text: v.Text, Items: v.Items}, nil
}

// UnmarshalJSON accepts a string or a {type, contents} object. Numeric
// contents are kept as their literal text.
func (v *ValueSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = ValueSpec{Text: s}
		return nil
	}
	var obj struct {
		Type     *string         `json:"type"`
		Contents json.RawMessage `json:"contents"`
	}
	if len(data) == 0 || data[0] != '{' {
		return errValueShape
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("%w: %w", errValueShape, err)
	}
	if obj.Type == nil {
		return errMissingType
	}
	if obj.Contents == nil {
		return errMissingContents
	}
	out := ValueSpec{Type: *obj.Type}

	dec := json.NewDecoder(bytes.NewReader(obj.Contents))
	dec.UseNumber()
	var contents any
	if err := dec.Decode(&contents); err != nil {
		return fmt.Errorf("%w: %w", errContentsShape, err)
	}
	switch c := contents.(type) {
	case []any:
		out.IsList = true
		out.Items = make([]string, 0, len(c))
		for _, item := range c {
			s, ok := jsonScalar(item)
			if !ok {
				return errContentsShape
			}
			out.Items = append(out.Items, s)
		}
	default:
		s, ok := jsonScalar(c)
		if !ok {
			return errContentsShape
		}
		out.Text = s
	}
	*v = out
	return nil
}

func jsonScalar(x any) (string, bool) {
	switch s := x.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	default:
		return "", false
	}
}

// UnmarshalYAML accepts a scalar or a {type, contents} mapping. Scalars are
// taken verbatim, so 0x10 stays hex text instead of becoming an int.
func (v *ValueSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = ValueSpec{Text: node.Value}
		return nil
	case yaml.MappingNode:
	default:
		return errValueShape
	}
	var out ValueSpec
	var haveType, haveContents bool
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "type":
			if val.Kind != yaml.ScalarNode {
				return errMissingType
			}
			out.Type, haveType = val.Value, true
		case "contents":
			haveContents = true
			switch val.Kind {
			case yaml.ScalarNode:
				out.Text = val.Value
			case yaml.SequenceNode:
				out.IsList = true
				out.Items = make([]string, 0, len(val.Content))
				for _, item := range val.Content {
					if item.Kind != yaml.ScalarNode {
						return errContentsShape
					}
					out.Items = append(out.Items, item.Value)
				}
			default:
				return errContentsShape
			}
		}
	}
	switch {
	case !haveType:
		return errMissingType
	case !haveContents:
		return errMissingContents
	}
	*v = out
	return nil
}

// JSONSchema describes both accepted value shapes.
func (ValueSpec) JSONSchema() *jsonschema.Schema {
	props := jsonschema.NewProperties()
	props.Set("type", &jsonschema.Schema{
		Type: "string",
		Enum: []any{"string", "u32", "u64", "u64[]", "bytes"},
	})
	props.Set("contents", &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
		},
		Description: "Decimal or 0x-prefixed hex for numbers, hex digits for bytes.",
	})
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{
				Type:                 "object",
				Properties:           props,
				Required:             []string{"type", "contents"},
				AdditionalProperties: jsonschema.FalseSchema,
			},
		},
	}
}

func (d Descriptor) node() (string, bool) {
	if d.Node == nil {
		return "", false
	}
	return *d.Node, true
}

func (d Descriptor) property() (string, bool) {
	if d.Property == nil {
		return "", false
	}
	return *d.Property, true
}

// String returns a short form used in logs and errors.
func (d Descriptor) String() string {
	node, _ := d.node()
	if prop, ok := d.property(); ok {
		return fmt.Sprintf("%s %s:%s", d.Name, node, prop)
	}
	return fmt.Sprintf("%s %s", d.Name, node)
}
