// Package batch parses operation lists and applies them to an ADT blob.
//
// A batch is a JSON or YAML list of descriptors:
//
//	[
//	  {"name": "zero_out_property", "node": "/", "property": "serial-number"},
//	  {"name": "add_property", "node": "/chosen", "property": "foo", "value": "bar"},
//	  {"name": "add_property", "node": "/chosen", "property": "base",
//	   "value": {"type": "u64", "contents": "0x800000000"}},
//	  {"name": "add_node", "node": "/arm-io/uart9"}
//	]
//
// Parsing only checks the list shape: a non-list, a non-object entry or an
// entry without a string name is MalformedInput and nothing is applied.
// Each descriptor is turned into a types.EditOp by the Registry just before
// it runs, so an unknown name or a bad parameter is reported when the
// runner reaches it.
//
// Batches are not transactional. Run stops at the first failing operation
// and returns the blob as left by the operations before it.
package batch
