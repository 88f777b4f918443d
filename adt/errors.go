package adt

import "errors"

var (
	// ErrNodeNotFound indicates a path segment matched no child.
	ErrNodeNotFound = errors.New("adt: node not found")

	// ErrPropertyNotFound indicates a node has no property with the given name.
	ErrPropertyNotFound = errors.New("adt: property not found")

	// ErrBadPath indicates a syntactically invalid path.
	ErrBadPath = errors.New("adt: bad path")

	// ErrCorrupt indicates the blob violates the layout invariants.
	ErrCorrupt = errors.New("adt: corrupt structure")
)
