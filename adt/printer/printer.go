// Package printer renders ADT blobs as indented text or JSON.
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/adtkit/adt"
)

const (
	DefaultIndentSize    = 2
	DefaultMaxDepth      = 0
	DefaultMaxValueBytes = 32
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs an indented, optionally coloured tree.
	FormatText Format = "text"

	// FormatJSON outputs JSON.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text format only).
	// Default: 2
	IndentSize int

	// MaxDepth limits recursion depth below the starting node (0 = unlimited).
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowValues includes property values in output.
	// Default: true
	ShowValues bool

	// ShowOffsets includes node and property byte offsets. Offsets change
	// with every structural edit, so leave this off for output meant to be
	// compared.
	// Default: false
	ShowOffsets bool

	// MaxValueBytes limits how many bytes of binary values to display.
	// Set to 0 for no limit.
	// Default: 32
	MaxValueBytes int

	// Color enables ANSI colours in text output.
	// Default: false
	Color bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:        FormatText,
		IndentSize:    DefaultIndentSize,
		MaxDepth:      DefaultMaxDepth,
		ShowValues:    true,
		MaxValueBytes: DefaultMaxValueBytes,
	}
}

// Printer writes formatted views of one blob.
type Printer struct {
	opts   Options
	writer io.Writer
	blob   []byte
	colors palette
}

// New creates a Printer over blob. The blob is read, never modified.
//
// Example:
//
//	p := printer.New(blob, os.Stdout, printer.DefaultOptions())
//	p.PrintTree("/arm-io")
func New(blob []byte, w io.Writer, opts Options) *Printer {
	return &Printer{
		blob:   blob,
		writer: w,
		opts:   opts,
		colors: newPalette(opts.Color),
	}
}

// PrintTree prints the node at path and all of its descendants.
func (p *Printer) PrintTree(path string) error {
	node, err := adt.ResolvePath(p.blob, path)
	if err != nil {
		return fmt.Errorf("find node %q: %w", path, err)
	}
	switch p.opts.Format {
	case FormatJSON:
		return p.printTreeJSON(node, canonical(path))
	default:
		return p.printTreeText(node, 0)
	}
}

// PrintNode prints the node at path with its properties but no children.
func (p *Printer) PrintNode(path string) error {
	node, err := adt.ResolvePath(p.blob, path)
	if err != nil {
		return fmt.Errorf("find node %q: %w", path, err)
	}
	switch p.opts.Format {
	case FormatJSON:
		return p.printNodeJSON(node, canonical(path))
	default:
		return p.printNodeText(node, 0)
	}
}

// PrintProperty prints a single property.
func (p *Printer) PrintProperty(path, name string) error {
	node, err := adt.ResolvePath(p.blob, path)
	if err != nil {
		return fmt.Errorf("find node %q: %w", path, err)
	}
	prop, err := adt.GetProperty(p.blob, node, name)
	if err != nil {
		return fmt.Errorf("get property %q: %w", name, err)
	}
	switch p.opts.Format {
	case FormatJSON:
		return p.writeJSON(p.propertyJSON(prop))
	default:
		return p.printPropertyText(prop, 0)
	}
}

func canonical(path string) string {
	segs, err := adt.SplitPath(path)
	if err != nil || len(segs) == 0 {
		return "/"
	}
	out := ""
	for _, s := range segs {
		out = adt.JoinPath(out, s)
	}
	return out
}
