package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/adt/printer"
)

// detailModel shows one property in full: decoded value and hex dump.
type detailModel struct {
	prop     adt.Property
	viewport viewport.Model
	visible  bool
}

func newDetailModel() *detailModel {
	return &detailModel{viewport: viewport.New(0, 0)}
}

// Init implements tea.Model
func (m *detailModel) Init() tea.Cmd { return nil }

// Show displays p. The value is copied so later edits to the blob do not
// show through.
func (m *detailModel) Show(p adt.Property) {
	p.Value = append([]byte(nil), p.Value...)
	m.prop = p
	m.visible = true
	m.viewport.SetContent(m.content())
	m.viewport.GotoTop()
}

// Hide closes the detail view
func (m *detailModel) Hide() {
	m.visible = false
}

// Visible returns whether the detail view is currently shown
func (m *detailModel) Visible() bool { return m.visible }

// SetSize sets the outer size of the overlay box.
func (m *detailModel) SetSize(width, height int) {
	m.viewport.Width = max(width-overlayStyle.GetHorizontalFrameSize(), 10)
	m.viewport.Height = max(height-overlayStyle.GetVerticalFrameSize()-2, 3)
	if m.visible {
		m.viewport.SetContent(m.content())
	}
}

// Update implements tea.Model; it scrolls the viewport.
func (m *detailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m *detailModel) View() string {
	title := overlayTitleStyle.Render(m.prop.Name)
	return overlayStyle.Render(title + "\n" + m.viewport.View())
}

func (m *detailModel) content() string {
	p := m.prop
	var b strings.Builder
	fmt.Fprintf(&b, "Offset:   %#x (value at %#x)\n", p.Offset, p.ValueOffset())
	fmt.Fprintf(&b, "Size:     %d bytes\n", p.Size)
	if p.Reserved {
		b.WriteString("Reserved: size high bit set\n")
	}
	fmt.Fprintf(&b, "Kind:     %s\n", printer.Classify(p.Value))
	fmt.Fprintf(&b, "Value:    %s\n", printer.FormatValue(p.Value, 0))
	if len(p.Value) > 0 {
		b.WriteString("\n")
		b.WriteString(hex.Dump(p.Value))
	}
	return b.String()
}
