package printer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/internal/format"
)

// jsonNode represents a node in JSON format.
type jsonNode struct {
	Name       string         `json:"name"`
	Path       string         `json:"path"`
	Offset     *int           `json:"offset,omitempty"`
	Properties []jsonProperty `json:"properties,omitempty"`
	Children   []jsonNode     `json:"children,omitempty"`
}

// jsonProperty represents a property in JSON format.
type jsonProperty struct {
	Name     string    `json:"name"`
	Size     int       `json:"size"`
	Reserved bool      `json:"reserved,omitempty"`
	Offset   *int      `json:"offset,omitempty"`
	Kind     ValueKind `json:"kind,omitempty"`
	Data     any       `json:"data,omitempty"`
}

func (p *Printer) printNodeJSON(node int, path string) error {
	n, err := p.nodeJSON(node, path, 0, false)
	if err != nil {
		return err
	}
	return p.writeJSON(n)
}

func (p *Printer) printTreeJSON(node int, path string) error {
	n, err := p.nodeJSON(node, path, 0, true)
	if err != nil {
		return err
	}
	return p.writeJSON(n)
}

func (p *Printer) nodeJSON(node int, path string, depth int, recurse bool) (jsonNode, error) {
	name, err := adt.NodeName(p.blob, node)
	if err != nil {
		name = ""
	}
	out := jsonNode{Name: name, Path: path}
	if p.opts.ShowOffsets {
		out.Offset = &node
	}
	props, err := adt.Properties(p.blob, node)
	if err != nil {
		return jsonNode{}, err
	}
	for _, prop := range props {
		out.Properties = append(out.Properties, p.propertyJSON(prop))
	}
	if !recurse || (p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth) {
		return out, nil
	}
	children, err := adt.Children(p.blob, node)
	if err != nil {
		return jsonNode{}, err
	}
	for i, c := range children {
		childName, err := adt.NodeName(p.blob, c)
		if err != nil {
			childName = fmt.Sprintf("@%d", i)
		}
		cn, err := p.nodeJSON(c, adt.JoinPath(path, childName), depth+1, true)
		if err != nil {
			return jsonNode{}, err
		}
		out.Children = append(out.Children, cn)
	}
	return out, nil
}

func (p *Printer) propertyJSON(prop adt.Property) jsonProperty {
	out := jsonProperty{Name: prop.Name, Size: prop.Size, Reserved: prop.Reserved}
	if p.opts.ShowOffsets {
		off := prop.Offset
		out.Offset = &off
	}
	if p.opts.ShowValues {
		out.Kind, out.Data = decodeValueJSON(prop.Value)
	}
	return out
}

// decodeValueJSON converts a value into a JSON friendly form. Bytes are
// always emitted in full as hex.
func decodeValueJSON(v []byte) (ValueKind, any) {
	kind := Classify(v)
	switch kind {
	case KindEmpty:
		return kind, nil
	case KindString:
		return kind, string(v[:len(v)-1])
	case KindStrings:
		return kind, splitStrings(v)
	case KindU32:
		return kind, format.ReadU32(v, 0)
	case KindU64:
		return kind, format.ReadU64(v, 0)
	default:
		return kind, hex.EncodeToString(v)
	}
}

func (p *Printer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}
