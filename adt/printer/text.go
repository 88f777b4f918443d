package printer

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/joshuapare/adtkit/adt"
)

type palette struct {
	node  func(a ...any) string
	prop  func(a ...any) string
	value func(a ...any) string
	meta  func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		node:  mk(color.FgCyan, color.Bold),
		prop:  mk(color.FgYellow),
		value: mk(color.FgGreen),
		meta:  mk(color.FgHiBlack),
	}
}

// printNodeText prints a node header line and its properties.
func (p *Printer) printNodeText(node, depth int) error {
	nprops, err := adt.PropertyCount(p.blob, node)
	if err != nil {
		return err
	}
	children, err := adt.ChildCount(p.blob, node)
	if err != nil {
		return err
	}
	name, err := adt.NodeName(p.blob, node)
	if err != nil {
		name = "(unnamed)"
	}

	indent := strings.Repeat(" ", depth*p.opts.IndentSize)
	fmt.Fprintf(p.writer, "%s%s", indent, p.colors.node(name))
	meta := fmt.Sprintf("properties: %d, children: %d", nprops, children)
	if p.opts.ShowOffsets {
		meta += fmt.Sprintf(", offset: %#x", node)
	}
	fmt.Fprintf(p.writer, " %s\n", p.colors.meta("("+meta+")"))

	if !p.opts.ShowValues {
		return nil
	}
	props, err := adt.Properties(p.blob, node)
	if err != nil {
		return err
	}
	for _, prop := range props {
		if err := p.printPropertyText(prop, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// printPropertyText prints one property line.
func (p *Printer) printPropertyText(prop adt.Property, depth int) error {
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)
	fmt.Fprintf(p.writer, "%s%s", indent, p.colors.prop(prop.Name))

	meta := fmt.Sprintf("[%d]", prop.Size)
	if prop.Reserved {
		meta = fmt.Sprintf("[%d, reserved]", prop.Size)
	}
	if p.opts.ShowOffsets {
		meta += fmt.Sprintf(" @%#x", prop.Offset)
	}
	_, err := fmt.Fprintf(p.writer, " %s = %s\n",
		p.colors.meta(meta), p.colors.value(FormatValue(prop.Value, p.opts.MaxValueBytes)))
	return err
}

// printTreeText recursively prints a subtree in text format.
func (p *Printer) printTreeText(node, depth int) error {
	if err := p.printNodeText(node, depth); err != nil {
		return err
	}
	if p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth {
		return nil
	}
	children, err := adt.Children(p.blob, node)
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := p.printTreeText(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
