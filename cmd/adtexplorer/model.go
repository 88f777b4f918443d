package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/cmd/adtexplorer/nodetree"
	"github.com/joshuapare/adtkit/internal/logger"
	pkgadt "github.com/joshuapare/adtkit/pkg/adt"
)

// Pane represents which pane is focused
type Pane int

const (
	TreePane Pane = iota
	PropPane
)

// InputMode represents different input modes
type InputMode int

const (
	NormalMode InputMode = iota
	SearchMode
	GoToPathMode
)

// Layout constants
const (
	headerHeight  = 2
	statusHeight  = 1
	paneChrome    = 2 // top and bottom border
	treeWidthPct  = 40
	minPaneHeight = 3
)

// Model is the main application model
type Model struct {
	path string
	blob []byte
	tree *nodetree.State

	props []adt.Property // properties of the node under the tree cursor

	treeCursor int
	treeOffset int
	propCursor int
	propOffset int

	focusedPane Pane
	inputMode   InputMode
	input       textinput.Model
	help        help.Model
	keys        KeyMap
	detail      *detailModel
	showHelp    bool

	// Status message for temporary feedback
	statusMessage string

	width  int
	height int

	copyText func(string) error

	err error
}

// fileChangedMsg is sent when the blob changes on disk.
type fileChangedMsg struct{}

// blobLoadedMsg carries a freshly read blob.
type blobLoadedMsg struct {
	blob []byte
	err  error
}

// NewModel creates a model over blob, which was read from path.
func NewModel(path string, blob []byte) Model {
	ti := textinput.New()
	ti.CharLimit = 256

	m := Model{
		path:     path,
		keys:     DefaultKeyMap(),
		input:    ti,
		help:     help.New(),
		detail:   newDetailModel(),
		copyText: clipboard.WriteAll,
	}
	m.setBlob(blob)
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// setBlob replaces the blob and rebuilds the tree, keeping expanded
// nodes, the filter and the selected node where they still exist.
func (m *Model) setBlob(blob []byte) {
	tree, err := nodetree.Load(blob)
	if err != nil {
		m.err = err
		return
	}
	selected := ""
	if it := m.currentItem(); it != nil {
		selected = it.Path
	}
	if m.tree != nil {
		tree.Restore(m.tree.ExpandedPaths(), m.tree.Filter())
	}
	m.blob = blob
	m.tree = tree
	m.err = nil

	m.treeCursor = 0
	if selected != "" {
		if i := tree.IndexOf(selected); i >= 0 {
			m.treeCursor = i
		}
	}
	m.loadProps()
}

// currentItem returns the node under the tree cursor.
func (m *Model) currentItem() *nodetree.Item {
	if m.tree == nil {
		return nil
	}
	return m.tree.Item(m.treeCursor)
}

// currentProp returns the property under the property cursor.
func (m *Model) currentProp() *adt.Property {
	if m.propCursor < 0 || m.propCursor >= len(m.props) {
		return nil
	}
	return &m.props[m.propCursor]
}

// loadProps reads the properties of the selected node.
func (m *Model) loadProps() {
	m.props = nil
	m.propCursor = 0
	m.propOffset = 0
	it := m.currentItem()
	if it == nil {
		return
	}
	props, err := adt.Properties(m.blob, it.Offset)
	if err != nil {
		m.statusMessage = fmt.Sprintf("Error: %v", err)
		logger.L.Warn("load properties", "path", it.Path, "error", err)
		return
	}
	m.props = props
}

// reloadCmd reads the blob from disk again.
func (m Model) reloadCmd() tea.Cmd {
	path := m.path
	return func() tea.Msg {
		blob, err := pkgadt.Load(path)
		return blobLoadedMsg{blob: blob, err: err}
	}
}

// contentHeight is the number of rows inside each pane.
func (m Model) contentHeight() int {
	return max(m.height-headerHeight-statusHeight-paneChrome, minPaneHeight)
}

func (m Model) treeWidth() int {
	return max(m.width*treeWidthPct/100, 20)
}

func (m Model) propWidth() int {
	return max(m.width-m.treeWidth(), 20)
}

// scrollInto returns an offset that keeps cursor inside a window of
// height rows.
func scrollInto(cursor, offset, height int) int {
	switch {
	case cursor < offset:
		return cursor
	case cursor >= offset+height:
		return cursor - height + 1
	default:
		return offset
	}
}
