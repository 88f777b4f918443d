package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/internal/format"
)

func TestEmptyRoot(t *testing.T) {
	blob, err := New("").Bytes()
	require.NoError(t, err)
	require.Equal(t, make([]byte, format.NodeHeaderSize), blob)
}

func TestBuildAndResolve(t *testing.T) {
	b := New("device-tree")
	b.SetString([]string{"chosen"}, "firmware-version", "iBoot-1234")
	b.SetU32([]string{"arm-io", "uart0"}, "reg", 0x1000)
	b.SetU64([]string{"arm-io"}, "ranges", 0x1122334455667788)

	blob, err := b.Bytes()
	require.NoError(t, err)

	rep, err := adt.Validate(blob)
	require.NoError(t, err)
	require.Equal(t, 4, rep.Nodes)
	require.Equal(t, len(blob), rep.End)
	require.Zero(t, rep.Trailing)

	uart, err := adt.ResolvePath(blob, "/arm-io/uart0")
	require.NoError(t, err)
	p, err := adt.GetProperty(blob, uart, "reg")
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x10, 0x00, 0x00}, p.Value)

	name, err := adt.NodeName(blob, uart)
	require.NoError(t, err)
	require.Equal(t, "uart0", name)

	armio, err := adt.ResolvePath(blob, "/arm-io")
	require.NoError(t, err)
	props, err := adt.Properties(blob, armio)
	require.NoError(t, err)
	require.Len(t, props, 2)
	require.Equal(t, format.NameProperty, props[0].Name, "name property comes first")
}

func TestEnsureNodeReusesExisting(t *testing.T) {
	b := New("root")
	first := b.EnsureNode([]string{"a", "b"})
	second := b.EnsureNode([]string{"a", "b"})
	require.Same(t, first, second)
	require.Len(t, b.Root().Children, 1)
}

func TestReservedBit(t *testing.T) {
	b := New("root")
	b.Root().Props = append(b.Root().Props, Prop{Name: "flagged", Value: []byte{1, 2, 3, 4}, Reserved: true})
	blob, err := b.Bytes()
	require.NoError(t, err)

	p, err := adt.GetProperty(blob, adt.RootOffset, "flagged")
	require.NoError(t, err)
	require.True(t, p.Reserved)
	require.Equal(t, 4, p.Size)
}

func TestInvalidPropertyName(t *testing.T) {
	b := New("root")
	b.SetString(nil, "this-property-name-is-far-too-long", "x")
	_, err := b.Bytes()
	require.ErrorIs(t, err, format.ErrNameTooLong)
}
