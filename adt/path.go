package adt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/joshuapare/adtkit/internal/format"
)

// SplitPath splits a "/"-separated path into its node names. The empty
// path and "/" both name the root and yield no segments. Repeated and
// trailing separators are ignored.
func SplitPath(path string) ([]string, error) {
	if path == "" || path == "/" {
		return nil, nil
	}
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("%q: must start with '/': %w", path, ErrBadPath)
	}
	if strings.IndexByte(path, 0) >= 0 {
		return nil, fmt.Errorf("%q: contains NUL: %w", path, ErrBadPath)
	}
	parts := strings.Split(path[1:], "/")
	out := parts[:0]
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// SplitParent splits path into its parent path and last segment.
// The root has no parent and yields ErrBadPath.
func SplitParent(path string) (string, string, error) {
	segs, err := SplitPath(path)
	if err != nil {
		return "", "", err
	}
	if len(segs) == 0 {
		return "", "", fmt.Errorf("%q: root has no parent: %w", path, ErrBadPath)
	}
	return "/" + strings.Join(segs[:len(segs)-1], "/"), segs[len(segs)-1], nil
}

// JoinPath appends a child name to a parent path.
func JoinPath(parent, name string) string {
	if parent == "" || parent == "/" {
		return "/" + name
	}
	return strings.TrimSuffix(parent, "/") + "/" + name
}

// ResolvePath walks from the root and returns the offset of the node named
// by path.
func ResolvePath(b []byte, path string) (int, error) {
	trace, err := ResolvePathTrace(b, path)
	if err != nil {
		return 0, err
	}
	return trace[len(trace)-1], nil
}

// ResolvePathTrace is ResolvePath but returns the offset of every node on
// the way, root first.
func ResolvePathTrace(b []byte, path string) ([]int, error) {
	segs, err := SplitPath(path)
	if err != nil {
		return nil, err
	}
	if _, err := format.DecodeNode(b, RootOffset); err != nil {
		return nil, fmt.Errorf("root: %w", err)
	}
	trace := make([]int, 1, len(segs)+1)
	trace[0] = RootOffset
	current := RootOffset
	for i, seg := range segs {
		child, err := findChild(b, current, seg)
		if err != nil {
			return nil, fmt.Errorf("%q at segment %d (%q): %w", path, i, seg, err)
		}
		current = child
		trace = append(trace, current)
	}
	return trace, nil
}

// findChild returns the first child of parent whose name property equals name.
func findChild(b []byte, parent int, name string) (int, error) {
	h, err := format.DecodeNode(b, parent)
	if err != nil {
		return 0, err
	}
	off, err := skipProperties(b, FirstPropertyOffset(parent), h.PropertyCount)
	if err != nil {
		return 0, err
	}
	needle := []byte(name)
	for i := uint32(0); i < h.ChildCount; i++ {
		p, err := GetProperty(b, off, format.NameProperty)
		switch {
		case err == nil:
			if bytes.Equal(format.CString(p.Value), needle) {
				return off, nil
			}
		case !errors.Is(err, ErrPropertyNotFound):
			return 0, err
		}
		if off, err = NextSiblingOffset(b, off); err != nil {
			return 0, err
		}
	}
	return 0, ErrNodeNotFound
}
