// Package adt provides read-only access to ADT (Apple device tree) blobs.
//
// # Overview
//
// An ADT blob is a packed tree with no pointers: a node header carries only
// its property and child counts, followed by the properties and then the
// children, recursively. A node is therefore identified by nothing more
// than its byte offset, and the only way to find where a node ends is to
// descend through its whole subtree.
//
// Every function in this package is a pure function of (blob, offset). No
// result is cached, because any structural edit shifts every offset past
// the edit point. Callers that mutate a blob must re-resolve paths
// afterwards.
//
// # Traversal
//
//	props, err := adt.PropertyCount(blob, node)
//	child, err := adt.FirstChildOffset(blob, node)
//	next, err := adt.NextSiblingOffset(blob, child)
//
// # Paths
//
// Paths are "/"-separated node names. Each segment is compared against the
// "name" property of the children at that level; the first match wins.
//
//	off, err := adt.ResolvePath(blob, "/arm-io/uart0")
//	prop, err := adt.GetProperty(blob, off, "compatible")
//
// # Error Handling
//
// Lookups fail with ErrNodeNotFound, ErrPropertyNotFound or ErrBadPath.
// Reads past the end of the blob fail with format.ErrTruncated; Validate
// reports structural problems as ErrCorrupt.
package adt
