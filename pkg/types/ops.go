package types

import "fmt"

// Operation names as they appear in batch files.
const (
	OpNameZeroProperty      = "zero_out_property"
	OpNameRandomizeProperty = "randomize_property"
	OpNameReplaceProperty   = "replace_property"
	OpNameDeleteProperty    = "delete_property"
	OpNameAddProperty       = "add_property"
	OpNameAddNode           = "add_node"
)

// EditOp represents a single structural edit of an ADT blob.
type EditOp interface {
	isEdit()
	// Op returns the batch name of the operation.
	Op() string
}

// OpZeroProperty overwrites a property value with zero bytes.
type OpZeroProperty struct {
	Path     string
	Property string
}

func (OpZeroProperty) isEdit() {}
func (OpZeroProperty) Op() string { return OpNameZeroProperty }

// OpRandomizeProperty overwrites a property value with random bytes.
type OpRandomizeProperty struct {
	Path     string
	Property string
}

func (OpRandomizeProperty) isEdit() {}
func (OpRandomizeProperty) Op() string { return OpNameRandomizeProperty }

// OpReplaceProperty writes a string into an existing property without
// resizing it.
type OpReplaceProperty struct {
	Path     string
	Property string
	Value    string
}

func (OpReplaceProperty) isEdit() {}
func (OpReplaceProperty) Op() string { return OpNameReplaceProperty }

// OpDeleteProperty removes a property from a node.
type OpDeleteProperty struct {
	Path     string
	Property string
}

func (OpDeleteProperty) isEdit() {}
func (OpDeleteProperty) Op() string { return OpNameDeleteProperty }

// OpAddProperty inserts a new property after a node's existing properties.
type OpAddProperty struct {
	Path     string
	Property string
	Value    Value
}

func (OpAddProperty) isEdit() {}
func (OpAddProperty) Op() string { return OpNameAddProperty }

// OpAddNode appends a new, empty child node. Path is the full path of the
// node to create; its parent must already exist.
type OpAddNode struct {
	Path string
}

func (OpAddNode) isEdit() {}
func (OpAddNode) Op() string { return OpNameAddNode }

// ValueType selects how an added property value is encoded.
type ValueType uint8

const (
	ValueString   ValueType = iota // NUL-terminated string
	ValueU32                       // 4-byte little-endian
	ValueU64                       // 8-byte little-endian
	ValueU64Array                  // concatenated 8-byte little-endian values
	ValueBytes                     // raw bytes given as hex text
)

// String implements the Stringer interface for ValueType.
func (t ValueType) String() string {
	switch t {
	case ValueString:
		return "string"
	case ValueU32:
		return "u32"
	case ValueU64:
		return "u64"
	case ValueU64Array:
		return "u64[]"
	case ValueBytes:
		return "bytes"
	default:
		return fmt.Sprintf("ValueType(%d)", uint8(t))
	}
}

// ParseValueType maps a batch type name onto a ValueType.
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case "string":
		return ValueString, nil
	case "u32":
		return ValueU32, nil
	case "u64":
		return ValueU64, nil
	case "u64[]":
		return ValueU64Array, nil
	case "bytes":
		return ValueBytes, nil
	default:
		return 0, Errorf(ErrKindInvalidOperation, "unknown value type %q", s)
	}
}

// Value is an undecoded property value. Scalar types use Text, u64[] uses
// Items.
type Value struct {
	Type  ValueType
	Text  string
	Items []string
}

// StringValue is shorthand for a string Value.
func StringValue(s string) Value {
	return Value{Type: ValueString, Text: s}
}

// Writer receives the final blob bytes.
type Writer interface {
	WriteADT(buf []byte) error
}
