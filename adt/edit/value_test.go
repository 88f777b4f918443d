package edit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/adtkit/pkg/types"
)

func TestEncodeValue(t *testing.T) {
	tests := []struct {
		name string
		in   types.Value
		want []byte
	}{
		{"string", types.StringValue("bar"), []byte("bar\x00")},
		{"empty string", types.StringValue(""), []byte{0}},
		{"u32 decimal", types.Value{Type: types.ValueU32, Text: "258"}, []byte{0x02, 0x01, 0, 0}},
		{"u32 hex", types.Value{Type: types.ValueU32, Text: "0xDEADBEEF"}, []byte{0xef, 0xbe, 0xad, 0xde}},
		{"u64", types.Value{Type: types.ValueU64, Text: "0X0102030405060708"}, []byte{8, 7, 6, 5, 4, 3, 2, 1}},
		{"u64[]", types.Value{Type: types.ValueU64Array, Items: []string{"1", "0x100"}},
			[]byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0}},
		{"empty u64[]", types.Value{Type: types.ValueU64Array}, []byte{}},
		{"bytes", types.Value{Type: types.ValueBytes, Text: "00ff 10"}, []byte{0x00, 0xff, 0x10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeValue(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeValueErrors(t *testing.T) {
	bad := []types.Value{
		{Type: types.ValueU32, Text: ""},
		{Type: types.ValueU32, Text: "-1"},
		{Type: types.ValueU32, Text: "4294967296"},
		{Type: types.ValueU64, Text: "0x"},
		{Type: types.ValueU64, Text: "0x1g"},
		{Type: types.ValueU64, Text: "18446744073709551616"},
		{Type: types.ValueU64Array, Items: []string{"1", ""}},
		{Type: types.ValueBytes, Text: "abc"},
		{Type: types.ValueType(99)},
	}
	for _, v := range bad {
		got, err := EncodeValue(v)
		require.ErrorIs(t, err, types.ErrInvalidOperation, "%+v", v)
		require.Nil(t, got)
	}
}
