package adt

import (
	"errors"
	"fmt"
)

// WalkFunc is called for every node in pre-order. Returning SkipChildren
// skips the node's subtree; any other error stops the walk.
type WalkFunc func(path string, node int) error

// SkipChildren can be returned by a WalkFunc to skip a node's children.
var SkipChildren = errors.New("adt: skip children")

// Walk visits the subtree rooted at path in pre-order.
func Walk(b []byte, path string, fn WalkFunc) error {
	if fn == nil {
		return errors.New("adt: nil walk callback")
	}
	node, err := ResolvePath(b, path)
	if err != nil {
		return err
	}
	if path == "" {
		path = "/"
	}
	return walk(b, path, node, fn)
}

func walk(b []byte, path string, node int, fn WalkFunc) error {
	if err := fn(path, node); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	children, err := Children(b, node)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for i, child := range children {
		name, err := NodeName(b, child)
		if err != nil {
			if !errors.Is(err, ErrPropertyNotFound) {
				return err
			}
			name = fmt.Sprintf("@%d", i)
		}
		if err := walk(b, JoinPath(path, name), child, fn); err != nil {
			return err
		}
	}
	return nil
}
