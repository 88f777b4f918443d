package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/adt/printer"
	"github.com/joshuapare/adtkit/internal/logger"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.detail.SetSize(msg.Width*3/4, msg.Height*3/4)
		m.clampCursors()
		return m, nil

	case fileChangedMsg:
		logger.L.Debug("file changed", "path", m.path)
		return m, m.reloadCmd()

	case blobLoadedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("Reload failed: %v", msg.err)
			return m, nil
		}
		m.setBlob(msg.blob)
		if m.err == nil {
			m.statusMessage = fmt.Sprintf("Reloaded %s (%d bytes)", m.path, len(msg.blob))
		}
		return m, nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.moveCursor(-1)
		case tea.MouseButtonWheelDown:
			m.moveCursor(1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Esc, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.detail.Visible() {
		if key.Matches(msg, m.keys.Esc, m.keys.Enter, m.keys.Quit) {
			m.detail.Hide()
			return m, nil
		}
		_, cmd := m.detail.Update(msg)
		return m, cmd
	}

	if m.inputMode != NormalMode {
		return m.handleInput(msg)
	}

	m.statusMessage = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Tab):
		if m.focusedPane == TreePane {
			m.focusedPane = PropPane
		} else {
			m.focusedPane = TreePane
		}

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.contentHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.contentHeight())
	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-m.paneLen())
	case key.Matches(msg, m.keys.End):
		m.moveCursor(m.paneLen())

	case key.Matches(msg, m.keys.Right):
		m.expandOrDescend()
	case key.Matches(msg, m.keys.Left):
		m.collapseOrAscend()

	case key.Matches(msg, m.keys.Enter):
		if m.focusedPane == PropPane {
			if p := m.currentProp(); p != nil {
				m.detail.Show(*p)
			}
		} else if it := m.currentItem(); it != nil {
			m.tree.Toggle(it.Path)
			m.selectPath(it.Path)
		}

	case key.Matches(msg, m.keys.Esc):
		if m.tree.Filter() != "" {
			m.applyFilter("")
		}

	case key.Matches(msg, m.keys.Search):
		m.inputMode = SearchMode
		m.input.Prompt = "/"
		m.input.SetValue(m.tree.Filter())
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Jump):
		m.inputMode = GoToPathMode
		m.input.Prompt = "go to: "
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Copy):
		if it := m.currentItem(); it != nil {
			m.copy(it.Path, "path")
		}

	case key.Matches(msg, m.keys.CopyValue):
		if p := m.currentProp(); p != nil {
			m.copy(printer.FormatValue(p.Value, 0), "value of "+p.Name)
		}

	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.ExpandAll):
		sel := m.selectedPath()
		m.tree.ExpandAll()
		m.selectPath(sel)
	case key.Matches(msg, m.keys.CollapseAll):
		sel := m.selectedPath()
		m.tree.CollapseAll()
		if m.tree.IndexOf(sel) < 0 {
			sel = "/"
		}
		m.selectPath(sel)
	}
	return m, nil
}

// handleInput routes keys while the search or go-to prompt is open.
func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.inputMode == SearchMode {
			m.applyFilter("")
		}
		m.closeInput()
		return m, nil

	case tea.KeyEnter:
		value := m.input.Value()
		mode := m.inputMode
		m.closeInput()
		if mode == GoToPathMode {
			m.goTo(value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.inputMode == SearchMode {
		m.applyFilter(m.input.Value())
	}
	return m, cmd
}

func (m *Model) closeInput() {
	m.inputMode = NormalMode
	m.input.Blur()
	m.input.SetValue("")
}

// applyFilter filters the tree and keeps the selection when it survives.
func (m *Model) applyFilter(query string) {
	sel := m.selectedPath()
	m.tree.SetFilter(query)
	if m.tree.IndexOf(sel) < 0 && m.tree.Len() > 0 {
		sel = m.tree.Item(0).Path
	}
	m.selectPath(sel)
}

// goTo reveals and selects the node at path.
func (m *Model) goTo(path string) {
	if path == "" {
		return
	}
	if _, err := adt.ResolvePath(m.blob, path); err != nil {
		m.statusMessage = fmt.Sprintf("Not found: %s", path)
		return
	}
	canonical := "/"
	if segs, _ := adt.SplitPath(path); len(segs) > 0 {
		canonical = ""
		for _, s := range segs {
			canonical = adt.JoinPath(canonical, s)
		}
	}
	if m.tree.Filter() != "" {
		m.tree.SetFilter("")
	}
	if !m.tree.Reveal(canonical) {
		m.statusMessage = fmt.Sprintf("Not found: %s", path)
		return
	}
	m.focusedPane = TreePane
	m.selectPath(canonical)
}

func (m *Model) copy(text, what string) {
	if err := m.copyText(text); err != nil {
		m.statusMessage = fmt.Sprintf("Copy failed: %v", err)
		return
	}
	m.statusMessage = "Copied " + what
}

func (m *Model) selectedPath() string {
	if it := m.currentItem(); it != nil {
		return it.Path
	}
	return ""
}

// selectPath moves the tree cursor to path and reloads the properties.
func (m *Model) selectPath(path string) {
	i := m.tree.IndexOf(path)
	if i < 0 {
		i = 0
	}
	m.treeCursor = i
	m.clampCursors()
	m.loadProps()
}

func (m *Model) expandOrDescend() {
	it := m.currentItem()
	if it == nil || m.focusedPane != TreePane {
		return
	}
	if !it.HasChildren() {
		return
	}
	if m.tree.Expand(it.Path) {
		m.selectPath(it.Path)
		return
	}
	m.moveCursor(1)
}

func (m *Model) collapseOrAscend() {
	it := m.currentItem()
	if it == nil {
		return
	}
	if m.focusedPane == PropPane {
		m.focusedPane = TreePane
		return
	}
	if m.tree.Collapse(it.Path) {
		m.selectPath(it.Path)
		return
	}
	if it.Parent != "" {
		m.selectPath(it.Parent)
	}
}

func (m *Model) paneLen() int {
	if m.focusedPane == PropPane {
		return len(m.props)
	}
	return m.tree.Len()
}

func (m *Model) moveCursor(delta int) {
	if m.tree == nil {
		return
	}
	if m.focusedPane == PropPane {
		m.propCursor = clamp(m.propCursor+delta, 0, len(m.props)-1)
		m.propOffset = scrollInto(m.propCursor, m.propOffset, m.contentHeight())
		return
	}
	before := m.treeCursor
	m.treeCursor = clamp(m.treeCursor+delta, 0, m.tree.Len()-1)
	m.treeOffset = scrollInto(m.treeCursor, m.treeOffset, m.contentHeight())
	if m.treeCursor != before {
		m.loadProps()
	}
}

func (m *Model) clampCursors() {
	if m.tree == nil {
		return
	}
	m.treeCursor = clamp(m.treeCursor, 0, m.tree.Len()-1)
	m.treeOffset = scrollInto(m.treeCursor, clamp(m.treeOffset, 0, m.treeCursor), m.contentHeight())
	m.propCursor = clamp(m.propCursor, 0, len(m.props)-1)
	m.propOffset = scrollInto(m.propCursor, clamp(m.propOffset, 0, m.propCursor), m.contentHeight())
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
