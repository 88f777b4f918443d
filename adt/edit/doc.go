// Package edit implements the six ADT edit operations.
//
// # Overview
//
// Every operation takes the current blob and returns the new authoritative
// blob. Operations that keep the blob's length (zero, randomize, replace)
// write inside the value span of an existing property. Operations that
// change it (delete property, add property, add node) obtain a
// layout.Delta and hand it to mutator.Apply, then fill the opened region.
//
//	ed := edit.New(edit.DefaultOptions())
//	blob, err = ed.ZeroProperty(blob, "/", "serial-number")
//	blob, err = ed.AddProperty(blob, "/chosen", "foo", types.StringValue("bar"))
//	blob, err = ed.AddNode(blob, "/arm-io/uart9")
//
// # Errors
//
// Failures are *types.Error values whose kind is one of NodeNotFound,
// PropertyNotFound, NodeAlreadyExists, InvalidOperation or MalformedInput
// (the blob itself is damaged). An operation that fails leaves the blob
// unchanged.
//
// # Values
//
// add_property values are encoded by EncodeValue: strings get a trailing
// NUL, u32 and u64 are little-endian, u64[] is a run of 8-byte values and
// bytes is hex text. Numbers are decimal or 0x-prefixed hex.
package edit
