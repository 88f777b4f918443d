package format

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Names are stored as single-byte text. Windows-1252 covers ASCII plus the
// Latin-1 punctuation seen in vendor property names.

// EncodeName converts a property or node name into its on-disk bytes.
// The result never contains a NUL and is at most PropNameMaxLen bytes.
func EncodeName(name string) ([]byte, error) {
	if name == "" {
		return nil, ErrNameEmpty
	}
	raw, err := charmap.Windows1252.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, ErrNameEncoding)
	}
	if bytes.IndexByte(raw, 0) >= 0 {
		return nil, fmt.Errorf("%q contains NUL: %w", name, ErrNameEncoding)
	}
	if len(raw) > PropNameMaxLen {
		return nil, fmt.Errorf("%q is %d bytes, limit %d: %w", name, len(raw), PropNameMaxLen, ErrNameTooLong)
	}
	return raw, nil
}

// DecodeName converts on-disk name bytes to UTF-8. Bytes after the first
// NUL are ignored.
func DecodeName(raw []byte) string {
	raw = CString(raw)
	for _, c := range raw {
		if c >= 0x80 {
			s, err := charmap.Windows1252.NewDecoder().Bytes(raw)
			if err != nil {
				return string(raw)
			}
			return string(s)
		}
	}
	return string(raw)
}

// CString returns b up to (excluding) its first NUL byte.
func CString(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}
