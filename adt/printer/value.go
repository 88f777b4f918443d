package printer

import (
	"bytes"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/joshuapare/adtkit/internal/format"
)

// ValueKind is the best guess at what a property value holds. The format
// itself stores no types.
type ValueKind string

const (
	KindEmpty   ValueKind = "empty"
	KindString  ValueKind = "string"
	KindStrings ValueKind = "strings"
	KindU32     ValueKind = "u32"
	KindU64     ValueKind = "u64"
	KindBytes   ValueKind = "bytes"
)

// Classify guesses the kind of a raw property value.
//
// NUL-terminated printable text is a string, several NUL-separated strings
// are a string list, four and eight byte values are integers and anything
// else is bytes.
func Classify(v []byte) ValueKind {
	switch {
	case len(v) == 0:
		return KindEmpty
	case isText(v):
		if bytes.Count(v, []byte{0}) > 1 {
			return KindStrings
		}
		return KindString
	case len(v) == 4:
		return KindU32
	case len(v) == 8:
		return KindU64
	default:
		return KindBytes
	}
}

func isText(v []byte) bool {
	if v[len(v)-1] != 0 || v[0] == 0 {
		return false
	}
	for _, s := range bytes.Split(v[:len(v)-1], []byte{0}) {
		if len(s) == 0 || !utf8.Valid(s) {
			return false
		}
		for _, r := range string(s) {
			if !unicode.IsPrint(r) {
				return false
			}
		}
	}
	return true
}

func splitStrings(v []byte) []string {
	parts := bytes.Split(bytes.TrimRight(v, "\x00"), []byte{0})
	out := make([]string, len(parts))
	for i, s := range parts {
		out[i] = string(s)
	}
	return out
}

// FormatValue renders v for text output. Binary values longer than
// maxBytes are truncated; 0 means no limit.
func FormatValue(v []byte, maxBytes int) string {
	switch Classify(v) {
	case KindEmpty:
		return "<empty>"
	case KindString:
		return fmt.Sprintf("%q", v[:len(v)-1])
	case KindStrings:
		return fmt.Sprintf("%q", splitStrings(v))
	case KindU32:
		n := format.ReadU32(v, 0)
		return fmt.Sprintf("0x%08X (%d)", n, n)
	case KindU64:
		n := format.ReadU64(v, 0)
		return fmt.Sprintf("0x%016X (%d)", n, n)
	default:
		if maxBytes == 0 || len(v) <= maxBytes {
			return fmt.Sprintf("%X", v)
		}
		return fmt.Sprintf("%X (truncated, %d total bytes)", v[:maxBytes], len(v))
	}
}
