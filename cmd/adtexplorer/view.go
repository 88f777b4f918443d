package main

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/adtkit/adt/printer"
)

// View renders the entire UI
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var fore tea.Model
	switch {
	case m.showHelp:
		fore = helpOverlay{m: &m}
	case m.detail.Visible():
		fore = m.detail
	default:
		return m.renderMain()
	}
	// Recreated on every render: Update returns new Model values, so a
	// stored background pointer would be stale.
	return overlay.New(fore, mainView{m: &m}, overlay.Center, overlay.Center, 0, 0).View()
}

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderContent(),
		m.renderStatus(),
	)
}

// renderHeader renders the title, file and selected path.
func (m Model) renderHeader() string {
	title := headerStyle.Render("ADT Explorer")
	file := pathStyle.Render(fmt.Sprintf("%s (%d bytes, %d nodes)",
		filepath.Base(m.path), len(m.blob), len(m.tree.All())))
	line := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", file)

	current := ""
	if it := m.currentItem(); it != nil {
		current = fmt.Sprintf("Path: %s  @%#x", it.Path, it.Offset)
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, pathStyle.Render(current))
}

// renderContent renders the tree and property panes side by side.
func (m Model) renderContent() string {
	h := m.contentHeight()
	tw, pw := m.treeWidth(), m.propWidth()

	treeStyle, propsStyle := paneStyle, paneStyle
	if m.focusedPane == TreePane {
		treeStyle = activePaneStyle
	} else {
		propsStyle = activePaneStyle
	}
	tree := treeStyle.
		Width(tw - treeStyle.GetHorizontalFrameSize()).
		Height(h).
		Render(m.renderTree(tw-treeStyle.GetHorizontalFrameSize(), h))
	props := propsStyle.
		Width(pw - propsStyle.GetHorizontalFrameSize()).
		Height(h).
		Render(m.renderProps(pw-propsStyle.GetHorizontalFrameSize(), h))
	return lipgloss.JoinHorizontal(lipgloss.Top, tree, props)
}

func (m Model) renderTree(width, height int) string {
	items := m.tree.Items()
	if len(items) == 0 {
		return mutedStyle.Render("no nodes match " + m.tree.Filter())
	}
	var lines []string
	end := min(m.treeOffset+height, len(items))
	for i := m.treeOffset; i < end; i++ {
		it := items[i]
		marker := "  "
		if it.HasChildren() {
			marker = "▸ "
			if m.tree.IsExpanded(it.Path) || m.tree.Filter() != "" {
				marker = "▾ "
			}
		}
		name := it.Name
		if name == "" {
			name = "(unnamed)"
		}
		text := strings.Repeat("  ", it.Depth) + marker + name
		meta := fmt.Sprintf(" %d/%d", it.PropN, it.ChildN)
		text = truncate(text, width-len(meta))
		if i == m.treeCursor {
			lines = append(lines, selectedStyle.Render(text+meta))
			continue
		}
		lines = append(lines, nodeStyle.Render(text)+mutedStyle.Render(meta))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderProps(width, height int) string {
	if len(m.props) == 0 {
		return mutedStyle.Render("no properties")
	}
	nameW := 0
	for _, p := range m.props {
		nameW = max(nameW, len(p.Name))
	}
	var lines []string
	end := min(m.propOffset+height, len(m.props))
	for i := m.propOffset; i < end; i++ {
		p := m.props[i]
		name := fmt.Sprintf("%-*s", nameW, p.Name)
		size := fmt.Sprintf(" [%d] ", p.Size)
		value := truncate(printer.FormatValue(p.Value, printer.DefaultMaxValueBytes),
			width-nameW-len(size))
		if i == m.propCursor && m.focusedPane == PropPane {
			lines = append(lines, selectedStyle.Render(name+size+value))
			continue
		}
		lines = append(lines, propStyle.Render(name)+mutedStyle.Render(size)+valueStyle.Render(value))
	}
	return strings.Join(lines, "\n")
}

// renderStatus renders the prompt, a status message or the key help.
func (m Model) renderStatus() string {
	switch {
	case m.inputMode != NormalMode:
		return statusStyle.Render(m.input.View())
	case m.statusMessage != "":
		return statusMessageStyle.Render(m.statusMessage)
	case m.tree.Filter() != "":
		return statusStyle.Render(fmt.Sprintf("filter: %q (%d nodes, esc clears)", m.tree.Filter(), m.tree.Len()))
	default:
		return statusStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
}

func truncate(s string, width int) string {
	if width <= 1 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// mainView wraps the main UI as the overlay background.
type mainView struct {
	m *Model
}

func (v mainView) Init() tea.Cmd                       { return nil }
func (v mainView) Update(tea.Msg) (tea.Model, tea.Cmd) { return v, nil }
func (v mainView) View() string                        { return v.m.renderMain() }

// helpOverlay renders the full key help as the overlay foreground.
type helpOverlay struct {
	m *Model
}

func (h helpOverlay) Init() tea.Cmd                       { return nil }
func (h helpOverlay) Update(tea.Msg) (tea.Model, tea.Cmd) { return h, nil }
func (h helpOverlay) View() string {
	hm := h.m.help
	hm.ShowAll = true
	title := overlayTitleStyle.Render("Keys")
	return overlayStyle.Render(title + "\n" + hm.View(h.m.keys))
}
