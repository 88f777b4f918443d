package adt

import (
	"bytes"
	"fmt"
	"io"

	core "github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/adt/printer"
)

// Tree prints the subtree at path.
func Tree(blob []byte, w io.Writer, path string, opts printer.Options) error {
	return printer.New(blob, w, opts).PrintTree(path)
}

// TreeString renders the subtree at path as plain text without offsets.
func TreeString(blob []byte, path string) (string, error) {
	var buf bytes.Buffer
	if err := Tree(blob, &buf, path, printer.DefaultOptions()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GetProperty returns a copy of one property. The copy stays valid after
// blob changes.
func GetProperty(blob []byte, path, name string) (core.Property, error) {
	node, err := core.ResolvePath(blob, path)
	if err != nil {
		return core.Property{}, fmt.Errorf("find node %q: %w", path, err)
	}
	p, err := core.GetProperty(blob, node, name)
	if err != nil {
		return core.Property{}, fmt.Errorf("node %q: %w", path, err)
	}
	p.Value = bytes.Clone(p.Value)
	return p, nil
}

// ValidateFile loads path and checks its structure.
func ValidateFile(path string) (core.Report, error) {
	blob, err := Load(path)
	if err != nil {
		return core.Report{}, err
	}
	return core.Validate(blob)
}
