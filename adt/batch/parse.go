package batch

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/adtkit/pkg/types"
)

// Format selects the batch file syntax.
type Format uint8

const (
	// FormatAuto picks JSON when the data starts with '[' and YAML otherwise.
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
)

// String returns the string representation of the Format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// FormatForPath guesses the format from a file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Entry is one batch item. Only its name is checked at parse time; the
// remaining fields are decoded when the entry is about to run, so a bad
// field fails that entry alone.
type Entry struct {
	Name string

	raw  json.RawMessage // JSON object
	node *yaml.Node      // YAML mapping
	desc *Descriptor     // already decoded
}

// EntryOf wraps an already decoded descriptor.
func EntryOf(d Descriptor) Entry {
	return Entry{Name: d.Name, desc: &d}
}

// Descriptor decodes the entry's fields.
func (e Entry) Descriptor() (Descriptor, error) {
	var d Descriptor
	var err error
	switch {
	case e.desc != nil:
		d = *e.desc
	case e.node != nil:
		err = e.node.Decode(&d)
	case e.raw != nil:
		err = json.Unmarshal(e.raw, &d)
	}
	if err != nil {
		return Descriptor{Name: e.Name}, types.Wrap(types.ErrKindInvalidOperation, err, "%s: fields", e.Name)
	}
	d.Name = e.Name
	return d, nil
}

// Parse splits a batch in the given format into entries.
func Parse(data []byte, f Format) ([]Entry, error) {
	switch f {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	default:
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			return ParseJSON(data)
		}
		return ParseYAML(data)
	}
}

// ParseJSON splits a JSON batch into entries.
func ParseJSON(data []byte) ([]Entry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, types.Wrap(types.ErrKindMalformedInput, err, "batch must be a JSON array")
	}
	out := make([]Entry, 0, len(items))
	for i, raw := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			return nil, types.Errorf(types.ErrKindMalformedInput, "entry %d: expected an object", i)
		}
		var name *string
		if err := json.Unmarshal(fields["name"], &name); err != nil || name == nil {
			return nil, types.Errorf(types.ErrKindMalformedInput, "entry %d: missing string \"name\"", i)
		}
		out = append(out, Entry{Name: *name, raw: raw})
	}
	return out, nil
}

// ParseYAML splits a YAML batch into entries. An empty document is an
// empty batch.
func ParseYAML(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, types.Wrap(types.ErrKindMalformedInput, err, "batch is not valid YAML")
	}
	if doc.Kind == 0 {
		return nil, nil
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, types.Errorf(types.ErrKindMalformedInput, "batch must be a YAML list")
	}
	out := make([]Entry, 0, len(root.Content))
	for i, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, types.Errorf(types.ErrKindMalformedInput, "entry %d: expected a mapping", i)
		}
		name, ok := yamlName(item)
		if !ok {
			return nil, types.Errorf(types.ErrKindMalformedInput, "entry %d: missing string \"name\"", i)
		}
		out = append(out, Entry{Name: name, node: item})
	}
	return out, nil
}

func yamlName(m *yaml.Node) (string, bool) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != "name" {
			continue
		}
		v := m.Content[i+1]
		if v.Kind != yaml.ScalarNode || v.Tag != "!!str" {
			return "", false
		}
		return v.Value, true
	}
	return "", false
}
