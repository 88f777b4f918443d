package edit

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/adt/builder"
	"github.com/joshuapare/adtkit/internal/format"
	"github.com/joshuapare/adtkit/pkg/types"
)

// fixture builds:
//
//	/ name=device-tree serial-number=01020304
//	/chosen name=chosen firmware-version="iBoot-1234\0"
//	/arm-io name=arm-io compatible="arm-io,t8103\0"
//	/arm-io/uart0 name=uart0 reg=u32
func fixture(t *testing.T) []byte {
	t.Helper()
	b := builder.New("device-tree")
	b.SetBytes(nil, "serial-number", []byte{1, 2, 3, 4})
	b.SetString([]string{"chosen"}, "firmware-version", "iBoot-1234")
	b.SetString([]string{"arm-io"}, "compatible", "arm-io,t8103")
	b.SetU32([]string{"arm-io", "uart0"}, "reg", 0x35200000)
	blob, err := b.Bytes()
	require.NoError(t, err)
	return blob
}

func newEditor() *Editor {
	return New(Options{Rand: bytes.NewReader(bytes.Repeat([]byte{0xA5}, 4096))})
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}

func prop(t *testing.T, blob []byte, path, name string) adt.Property {
	t.Helper()
	node, err := adt.ResolvePath(blob, path)
	require.NoError(t, err)
	p, err := adt.GetProperty(blob, node, name)
	require.NoError(t, err)
	return p
}

func TestZeroPropertySerialNumber(t *testing.T) {
	blob := fixture(t)
	before := len(blob)

	out, err := newEditor().ZeroProperty(blob, "/", "serial-number")
	require.NoError(t, err)
	require.Len(t, out, before)

	p := prop(t, out, "/", "serial-number")
	assert.Equal(t, 4, p.Size)
	assert.Equal(t, []byte{0, 0, 0, 0}, p.Value)
}

func TestZeroPropertyIdempotent(t *testing.T) {
	ed := newEditor()
	once, err := ed.ZeroProperty(fixture(t), "/chosen", "firmware-version")
	require.NoError(t, err)
	once = clone(once)
	twice, err := ed.ZeroProperty(clone(once), "/chosen", "firmware-version")
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestRandomizePropertyStaysInRange(t *testing.T) {
	blob := fixture(t)
	orig := clone(blob)
	p := prop(t, blob, "/chosen", "firmware-version")

	out, err := newEditor().RandomizeProperty(blob, "/chosen", "firmware-version")
	require.NoError(t, err)
	require.Len(t, out, len(orig))

	start, end := p.ValueOffset(), p.ValueOffset()+p.Size
	assert.Equal(t, orig[:start], out[:start])
	assert.Equal(t, orig[end:], out[end:], "padding and everything after must be untouched")
	assert.Equal(t, bytes.Repeat([]byte{0xA5}, p.Size), out[start:end])
	assert.Equal(t, p.Size, prop(t, out, "/chosen", "firmware-version").Size)
}

func TestRandomizePropertyShortRead(t *testing.T) {
	blob := fixture(t)
	orig := clone(blob)
	ed := New(Options{Rand: iotest.ErrReader(errors.New("entropy exhausted"))})

	_, err := ed.RandomizeProperty(blob, "/chosen", "firmware-version")
	require.Error(t, err)
	require.Equal(t, orig, blob)
}

func TestReplacePropertyShorterKeepsTail(t *testing.T) {
	blob := fixture(t)
	out, err := newEditor().ReplaceProperty(blob, "/chosen", "firmware-version", "iBoot")
	require.NoError(t, err)

	p := prop(t, out, "/chosen", "firmware-version")
	assert.Equal(t, 11, p.Size)
	// "iBoot" + NUL, then the old "1234" and its NUL remain.
	assert.Equal(t, []byte("iBoot\x001234\x00"), p.Value)
	assert.Equal(t, "iBoot", p.String())
}

func TestReplacePropertyExactFit(t *testing.T) {
	blob := fixture(t)
	out, err := newEditor().ReplaceProperty(blob, "/", "serial-number", "ABCD")
	require.NoError(t, err)
	assert.Equal(t, []byte("ABCD"), prop(t, out, "/", "serial-number").Value)
}

func TestReplacePropertyTooLong(t *testing.T) {
	blob := fixture(t)
	orig := clone(blob)

	out, err := newEditor().ReplaceProperty(blob, "/", "serial-number", "ABCDE")
	require.ErrorIs(t, err, types.ErrInvalidOperation)
	require.Equal(t, orig, out)
	require.Equal(t, orig, blob)
}

func TestAddPropertyToChosen(t *testing.T) {
	blob := fixture(t)
	before := len(blob)
	chosen, err := adt.ResolvePath(blob, "/chosen")
	require.NoError(t, err)
	n, err := adt.PropertyCount(blob, chosen)
	require.NoError(t, err)
	require.Equal(t, uint32(2), n)

	out, err := newEditor().AddProperty(blob, "/chosen", "foo", types.StringValue("bar"))
	require.NoError(t, err)
	require.Len(t, out, before+format.PropHeaderSize+4)

	chosen, err = adt.ResolvePath(out, "/chosen")
	require.NoError(t, err)
	n, err = adt.PropertyCount(out, chosen)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), n)
	assert.Equal(t, []byte("bar\x00"), prop(t, out, "/chosen", "foo").Value)

	_, err = adt.Validate(out)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x35200000), format.ReadU32(prop(t, out, "/arm-io/uart0", "reg").Value, 0))
}

func TestAddThenDeleteRestores(t *testing.T) {
	values := []types.Value{
		types.StringValue("x"),
		{Type: types.ValueU32, Text: "0x10"},
		{Type: types.ValueU64, Text: "42"},
		{Type: types.ValueU64Array, Items: []string{"1", "0x2", "3"}},
		{Type: types.ValueBytes, Text: "de ad be ef 01"},
	}
	ed := newEditor()
	for _, v := range values {
		t.Run(v.Type.String(), func(t *testing.T) {
			blob := fixture(t)
			orig := clone(blob)

			out, err := ed.AddProperty(blob, "/arm-io", "new-prop", v)
			require.NoError(t, err)
			out, err = ed.DeleteProperty(out, "/arm-io", "new-prop")
			require.NoError(t, err)
			require.Equal(t, orig, out)
		})
	}
}

func TestDeleteProperty(t *testing.T) {
	blob := fixture(t)
	before := len(blob)
	out, err := newEditor().DeleteProperty(blob, "/arm-io", "compatible")
	require.NoError(t, err)
	require.Len(t, out, before-format.PropertyLen(len("arm-io,t8103")+1))

	armio, err := adt.ResolvePath(out, "/arm-io")
	require.NoError(t, err)
	_, err = adt.GetProperty(out, armio, "compatible")
	require.ErrorIs(t, err, adt.ErrPropertyNotFound)
	_, err = adt.ResolvePath(out, "/arm-io/uart0")
	require.NoError(t, err)
}

func TestAddNode(t *testing.T) {
	blob := fixture(t)
	before := len(blob)
	out, err := newEditor().AddNode(blob, "/arm-io/uart1")
	require.NoError(t, err)
	require.Len(t, out, before+format.NodeLen(len("uart1")))

	node, err := adt.ResolvePath(out, "/arm-io/uart1")
	require.NoError(t, err)
	h, err := format.DecodeNode(out, node)
	require.NoError(t, err)
	assert.Equal(t, format.NodeHeader{PropertyCount: 1, ChildCount: 0}, h)
	name, err := adt.NodeName(out, node)
	require.NoError(t, err)
	assert.Equal(t, "uart1", name)

	// Earlier siblings keep their place, the new node is last.
	children, err := adt.Children(out, mustResolve(t, out, "/arm-io"))
	require.NoError(t, err)
	require.Len(t, children, 2)
	assert.Equal(t, node, children[1])

	_, err = adt.Validate(out)
	require.NoError(t, err)
}

func TestAddNodeUnderRoot(t *testing.T) {
	blob := fixture(t)
	out, err := newEditor().AddNode(blob, "/memory-map")
	require.NoError(t, err)
	node := mustResolve(t, out, "/memory-map")
	assert.Equal(t, len(out)-format.NodeLen(len("memory-map")), node)
}

func TestAddNodeExisting(t *testing.T) {
	for _, path := range []string{"/arm-io", "/arm-io/uart0", "/", ""} {
		blob := fixture(t)
		orig := clone(blob)
		out, err := newEditor().AddNode(blob, path)
		require.ErrorIs(t, err, types.ErrNodeAlreadyExists, path)
		require.Equal(t, orig, out)
		require.Equal(t, orig, blob)
	}
}

func TestAddNodeMissingParent(t *testing.T) {
	blob := fixture(t)
	orig := clone(blob)
	_, err := newEditor().AddNode(blob, "/nope/child")
	require.ErrorIs(t, err, types.ErrNodeNotFound)
	require.Equal(t, orig, blob)
}

func TestLookupErrors(t *testing.T) {
	ed := newEditor()
	tests := []struct {
		name string
		run  func([]byte) ([]byte, error)
		want error
	}{
		{"zero missing node", func(b []byte) ([]byte, error) { return ed.ZeroProperty(b, "/missing", "x") }, types.ErrNodeNotFound},
		{"zero missing prop", func(b []byte) ([]byte, error) { return ed.ZeroProperty(b, "/chosen", "x") }, types.ErrPropertyNotFound},
		{"randomize missing prop", func(b []byte) ([]byte, error) { return ed.RandomizeProperty(b, "/", "x") }, types.ErrPropertyNotFound},
		{"replace missing node", func(b []byte) ([]byte, error) { return ed.ReplaceProperty(b, "/a/b", "x", "y") }, types.ErrNodeNotFound},
		{"delete missing prop", func(b []byte) ([]byte, error) { return ed.DeleteProperty(b, "/arm-io", "reg") }, types.ErrPropertyNotFound},
		{"add to missing node", func(b []byte) ([]byte, error) {
			return ed.AddProperty(b, "/missing", "x", types.StringValue("y"))
		}, types.ErrNodeNotFound},
		{"relative path", func(b []byte) ([]byte, error) { return ed.ZeroProperty(b, "chosen", "x") }, types.ErrInvalidOperation},
		{"name too long", func(b []byte) ([]byte, error) {
			return ed.AddProperty(b, "/", "abcdefghijklmnopqrstuvwxyz0123456", types.StringValue("y"))
		}, types.ErrInvalidOperation},
		{"bad u32", func(b []byte) ([]byte, error) {
			return ed.AddProperty(b, "/", "x", types.Value{Type: types.ValueU32, Text: "0x100000000"})
		}, types.ErrInvalidOperation},
		{"bad u64[] element", func(b []byte) ([]byte, error) {
			return ed.AddProperty(b, "/", "x", types.Value{Type: types.ValueU64Array, Items: []string{"1", "two"}})
		}, types.ErrInvalidOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := fixture(t)
			orig := clone(blob)
			_, err := tt.run(blob)
			require.ErrorIs(t, err, tt.want)
			require.Equal(t, orig, blob)
		})
	}
}

func TestTruncatedBlobIsMalformed(t *testing.T) {
	blob := fixture(t)
	_, err := newEditor().ZeroProperty(blob[:20], "/", "serial-number")
	require.ErrorIs(t, err, types.ErrMalformedInput)
}

func TestApplyDispatch(t *testing.T) {
	ed := newEditor()
	blob := fixture(t)
	ops := []types.EditOp{
		types.OpAddNode{Path: "/chosen/memory-map"},
		types.OpAddProperty{Path: "/chosen/memory-map", Property: "base", Value: types.Value{Type: types.ValueU64, Text: "0x800000000"}},
		types.OpReplaceProperty{Path: "/chosen", Property: "firmware-version", Value: "dev"},
		types.OpZeroProperty{Path: "/", Property: "serial-number"},
		types.OpRandomizeProperty{Path: "/arm-io/uart0", Property: "reg"},
		types.OpDeleteProperty{Path: "/arm-io", Property: "compatible"},
	}
	var err error
	for _, op := range ops {
		blob, err = ed.Apply(blob, op)
		require.NoError(t, err, op.Op())
	}
	_, err = adt.Validate(blob)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x800000000), format.ReadU64(prop(t, blob, "/chosen/memory-map", "base").Value, 0))
	assert.Equal(t, "dev", prop(t, blob, "/chosen", "firmware-version").String())

	_, err = ed.Apply(blob, nil)
	require.ErrorIs(t, err, types.ErrInvalidOperation)
}

func mustResolve(t *testing.T, blob []byte, path string) int {
	t.Helper()
	off, err := adt.ResolvePath(blob, path)
	require.NoError(t, err)
	return off
}
