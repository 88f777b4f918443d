// Package nodetree holds the expand/collapse state of the explorer's node
// tree.
package nodetree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/adtkit/adt"
)

// Item is one node of the blob, flattened.
type Item struct {
	Path   string
	Name   string
	Parent string // path of the parent, empty for the root
	Depth  int
	Offset int
	PropN  int
	ChildN int
}

// HasChildren reports whether the node has children.
func (it Item) HasChildren() bool { return it.ChildN > 0 }

// State tracks all nodes of a blob and which of them are visible.
type State struct {
	all      []Item         // every node, pre-order
	items    []Item         // visible nodes
	index    map[string]int // path -> index in all
	expanded map[string]bool
	filter   string
}

// Load walks blob and returns a State with only the root expanded.
func Load(blob []byte) (*State, error) {
	s := &State{
		index:    make(map[string]int),
		expanded: make(map[string]bool),
	}
	err := adt.Walk(blob, "/", func(path string, node int) error {
		it, err := newItem(blob, path, node)
		if err != nil {
			return err
		}
		s.index[path] = len(s.all)
		s.all = append(s.all, it)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load tree: %w", err)
	}
	s.expanded["/"] = true
	s.rebuild()
	return s, nil
}

func newItem(blob []byte, path string, node int) (Item, error) {
	props, err := adt.PropertyCount(blob, node)
	if err != nil {
		return Item{}, err
	}
	children, err := adt.ChildCount(blob, node)
	if err != nil {
		return Item{}, err
	}
	name, err := adt.NodeName(blob, node)
	if err != nil && !errors.Is(err, adt.ErrPropertyNotFound) {
		return Item{}, err
	}
	it := Item{
		Path:   path,
		Name:   name,
		Offset: node,
		PropN:  int(props),
		ChildN: int(children),
	}
	if path != "/" {
		parent, last, err := adt.SplitParent(path)
		if err != nil {
			return Item{}, err
		}
		it.Parent = parent
		it.Depth = strings.Count(path, "/")
		if it.Name == "" {
			it.Name = last
		}
	}
	return it, nil
}

// All returns every node in pre-order.
func (s *State) All() []Item { return s.all }

// Items returns the visible nodes.
func (s *State) Items() []Item { return s.items }

// Len returns the number of visible nodes.
func (s *State) Len() int { return len(s.items) }

// Item returns the visible node at i, or nil.
func (s *State) Item(i int) *Item {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return &s.items[i]
}

// Lookup returns the node at path.
func (s *State) Lookup(path string) (Item, bool) {
	i, ok := s.index[path]
	if !ok {
		return Item{}, false
	}
	return s.all[i], true
}

// IsExpanded reports whether path is expanded.
func (s *State) IsExpanded(path string) bool { return s.expanded[path] }

// Expand opens path. It reports whether anything changed.
func (s *State) Expand(path string) bool {
	it, ok := s.Lookup(path)
	if !ok || !it.HasChildren() || s.expanded[path] {
		return false
	}
	s.expanded[path] = true
	s.rebuild()
	return true
}

// Collapse closes path. It reports whether anything changed.
func (s *State) Collapse(path string) bool {
	if !s.expanded[path] {
		return false
	}
	delete(s.expanded, path)
	s.rebuild()
	return true
}

// Toggle flips the expanded state of path.
func (s *State) Toggle(path string) {
	if !s.Collapse(path) {
		s.Expand(path)
	}
}

// ExpandAll opens every node with children.
func (s *State) ExpandAll() {
	for _, it := range s.all {
		if it.HasChildren() {
			s.expanded[it.Path] = true
		}
	}
	s.rebuild()
}

// CollapseAll closes everything except the root.
func (s *State) CollapseAll() {
	clear(s.expanded)
	s.expanded["/"] = true
	s.rebuild()
}

// Reveal expands every ancestor of path so that it becomes visible.
func (s *State) Reveal(path string) bool {
	it, ok := s.Lookup(path)
	if !ok {
		return false
	}
	for p := it.Parent; p != ""; {
		s.expanded[p] = true
		parent, ok := s.Lookup(p)
		if !ok {
			break
		}
		p = parent.Parent
	}
	s.rebuild()
	return true
}

// IndexOf returns the visible index of path, or -1.
func (s *State) IndexOf(path string) int {
	for i, it := range s.items {
		if it.Path == path {
			return i
		}
	}
	return -1
}

// Filter returns the active filter.
func (s *State) Filter() string { return s.filter }

// SetFilter shows only nodes whose name contains query, plus their
// ancestors. An empty query restores the expand/collapse view.
func (s *State) SetFilter(query string) {
	s.filter = strings.ToLower(query)
	s.rebuild()
}

// ExpandedPaths returns a copy of the expanded set.
func (s *State) ExpandedPaths() map[string]bool {
	out := make(map[string]bool, len(s.expanded))
	for k, v := range s.expanded {
		out[k] = v
	}
	return out
}

// Restore applies an expanded set saved from an earlier State. Paths that
// no longer exist are dropped.
func (s *State) Restore(expanded map[string]bool, filter string) {
	clear(s.expanded)
	for p := range expanded {
		if _, ok := s.index[p]; ok {
			s.expanded[p] = true
		}
	}
	s.expanded["/"] = true
	s.filter = filter
	s.rebuild()
}

func (s *State) rebuild() {
	s.items = make([]Item, 0, len(s.all))
	if s.filter != "" {
		s.rebuildFiltered()
		return
	}
	for _, it := range s.all {
		if s.visible(it) {
			s.items = append(s.items, it)
		}
	}
}

// visible reports whether every ancestor of it is expanded.
func (s *State) visible(it Item) bool {
	for p := it.Parent; p != ""; {
		if !s.expanded[p] {
			return false
		}
		parent, ok := s.Lookup(p)
		if !ok {
			return false
		}
		p = parent.Parent
	}
	return true
}

func (s *State) rebuildFiltered() {
	keep := make(map[string]bool)
	for _, it := range s.all {
		if !strings.Contains(strings.ToLower(it.Name), s.filter) {
			continue
		}
		keep[it.Path] = true
		for p := it.Parent; p != "" && !keep[p]; {
			keep[p] = true
			parent, ok := s.Lookup(p)
			if !ok {
				break
			}
			p = parent.Parent
		}
	}
	for _, it := range s.all {
		if keep[it.Path] {
			s.items = append(s.items, it)
		}
	}
}
