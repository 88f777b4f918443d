package edit

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/joshuapare/adtkit/pkg/types"
)

// EncodeValue converts a typed value into the bytes stored in a property.
// Any parse failure is an InvalidOperation error and yields no bytes.
func EncodeValue(v types.Value) ([]byte, error) {
	switch v.Type {
	case types.ValueString:
		return append([]byte(v.Text), 0), nil
	case types.ValueU32:
		n, err := parseUint(v.Text, 32)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint32(nil, uint32(n)), nil
	case types.ValueU64:
		n, err := parseUint(v.Text, 64)
		if err != nil {
			return nil, err
		}
		return binary.LittleEndian.AppendUint64(nil, n), nil
	case types.ValueU64Array:
		out := make([]byte, 0, 8*len(v.Items))
		for i, item := range v.Items {
			n, err := parseUint(item, 64)
			if err != nil {
				return nil, types.Wrap(types.ErrKindInvalidOperation, err, "u64[] element %d", i)
			}
			out = binary.LittleEndian.AppendUint64(out, n)
		}
		return out, nil
	case types.ValueBytes:
		text := strings.Join(strings.Fields(v.Text), "")
		out, err := hex.DecodeString(text)
		if err != nil {
			return nil, types.Wrap(types.ErrKindInvalidOperation, err, "bytes value %q", v.Text)
		}
		return out, nil
	default:
		return nil, types.Errorf(types.ErrKindInvalidOperation, "unknown value type %s", v.Type)
	}
}

// parseUint accepts decimal or 0x-prefixed hexadecimal.
func parseUint(s string, bits int) (uint64, error) {
	base := 10
	digits := s
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		base, digits = 16, s[2:]
	}
	n, err := strconv.ParseUint(digits, base, bits)
	if err != nil {
		return 0, types.Wrap(types.ErrKindInvalidOperation, err, "%q is not a u%d", s, bits)
	}
	return n, nil
}
