// Package types defines the shared vocabulary of adtkit: the typed error
// categories surfaced to callers and the tagged edit operations that the
// batch runner dispatches to the editing engine.
//
// Design goals:
//   - Stable error kinds so callers can branch on intent rather than text.
//   - Small, copyable operation values instead of an open-ended command map.
//   - No dependencies beyond the standard library.
package types
