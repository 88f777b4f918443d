package printer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/adtkit/adt/builder"
)

func fixture(t *testing.T) []byte {
	t.Helper()
	b := builder.New("device-tree")
	b.SetBytes(nil, "serial-number", []byte{1, 2, 3, 4})
	b.SetString([]string{"chosen"}, "firmware-version", "iBoot-1234")
	b.SetBytes([]string{"arm-io"}, "compatible", []byte("arm-io,t8103\x00arm-io\x00"))
	b.SetU64([]string{"arm-io", "uart0"}, "reg", 0x235200000)
	b.SetBytes([]string{"arm-io", "uart0"}, "blob", []byte{1, 2, 3, 4, 5, 6})
	blob, err := b.Bytes()
	require.NoError(t, err)
	return blob
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   []byte
		want ValueKind
	}{
		{nil, KindEmpty},
		{[]byte("abc\x00"), KindString},
		{[]byte("a\x00b\x00"), KindStrings},
		{[]byte{1, 0, 0, 0}, KindU32},
		{[]byte{0, 0, 0, 0}, KindU32},
		{[]byte{1, 2, 3, 4, 5, 6, 7, 8}, KindU64},
		{[]byte{1, 2, 3}, KindBytes},
		{[]byte("a\x00\x00"), KindBytes},
		{[]byte("\x01\x02\x00"), KindBytes},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.in), "%q", tt.in)
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, `"abc"`, FormatValue([]byte("abc\x00"), 0))
	assert.Equal(t, `["a" "b"]`, FormatValue([]byte("a\x00b\x00"), 0))
	assert.Equal(t, "0x00000200 (512)", FormatValue([]byte{0, 2, 0, 0}, 0))
	assert.Equal(t, "010203", FormatValue([]byte{1, 2, 3}, 0))
	assert.Equal(t, "0102 (truncated, 3 total bytes)", FormatValue([]byte{1, 2, 3}, 2))
	assert.Equal(t, "<empty>", FormatValue(nil, 0))
}

func TestPrintTreeText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, New(fixture(t), &out, DefaultOptions()).PrintTree("/"))

	want := strings.Join([]string{
		`device-tree (properties: 2, children: 2)`,
		`  name [12] = "device-tree"`,
		`  serial-number [4] = 0x04030201 (67305985)`,
		`  chosen (properties: 2, children: 0)`,
		`    name [7] = "chosen"`,
		`    firmware-version [11] = "iBoot-1234"`,
		`  arm-io (properties: 2, children: 1)`,
		`    name [7] = "arm-io"`,
		`    compatible [20] = ["arm-io,t8103" "arm-io"]`,
		`    uart0 (properties: 3, children: 0)`,
		`      name [6] = "uart0"`,
		`      reg [8] = 0x0000000235200000 (9481224192)`,
		`      blob [6] = 010203040506`,
		``,
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestPrintTreeMaxDepthAndOffsets(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 1
	opts.ShowValues = false
	opts.ShowOffsets = true
	var out bytes.Buffer
	require.NoError(t, New(fixture(t), &out, opts).PrintTree("/"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "offset: 0x0")
	assert.NotContains(t, out.String(), "uart0")
}

func TestPrintTreeJSON(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatJSON
	var out bytes.Buffer
	require.NoError(t, New(fixture(t), &out, opts).PrintTree("/arm-io"))

	var n jsonNode
	require.NoError(t, json.Unmarshal(out.Bytes(), &n))
	assert.Equal(t, "arm-io", n.Name)
	assert.Equal(t, "/arm-io", n.Path)
	require.Len(t, n.Children, 1)
	assert.Equal(t, "/arm-io/uart0", n.Children[0].Path)
	assert.Equal(t, KindStrings, n.Properties[1].Kind)
	assert.Equal(t, []any{"arm-io,t8103", "arm-io"}, n.Properties[1].Data)
	assert.Equal(t, "010203040506", n.Children[0].Properties[2].Data)
}

func TestPrintPropertyAndNode(t *testing.T) {
	blob := fixture(t)
	var out bytes.Buffer
	p := New(blob, &out, DefaultOptions())
	require.NoError(t, p.PrintProperty("/chosen", "firmware-version"))
	assert.Equal(t, "firmware-version [11] = \"iBoot-1234\"\n", out.String())

	out.Reset()
	require.NoError(t, p.PrintNode("/arm-io"))
	assert.NotContains(t, out.String(), "uart0")

	require.Error(t, p.PrintProperty("/chosen", "missing"))
	require.Error(t, p.PrintTree("/missing"))
}

func TestColorOutput(t *testing.T) {
	opts := DefaultOptions()
	opts.Color = true
	var out bytes.Buffer
	require.NoError(t, New(fixture(t), &out, opts).PrintNode("/chosen"))
	assert.Contains(t, out.String(), "\x1b[")
}
