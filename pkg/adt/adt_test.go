package adt

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/joshuapare/adtkit/adt"
	"github.com/joshuapare/adtkit/adt/batch"
	"github.com/joshuapare/adtkit/adt/builder"
	"github.com/joshuapare/adtkit/adt/printer"
	"github.com/joshuapare/adtkit/internal/writer"
	"github.com/joshuapare/adtkit/pkg/types"
)

func fixture(t *testing.T) []byte {
	t.Helper()
	b := builder.New("device-tree")
	b.SetBytes(nil, "serial-number", []byte{1, 2, 3, 4})
	b.SetString([]string{"chosen"}, "firmware-version", "iBoot-1234")
	b.SetU32([]string{"arm-io", "uart0"}, "reg", 0x200)
	blob, err := b.Bytes()
	require.NoError(t, err)
	return blob
}

func writeFiles(t *testing.T, blob []byte, batchText, opsName string) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	adtPath := filepath.Join(dir, "DeviceTree.bin")
	opsPath := filepath.Join(dir, opsName)
	require.NoError(t, os.WriteFile(adtPath, blob, 0o644))
	require.NoError(t, os.WriteFile(opsPath, []byte(batchText), 0o644))
	return dir, adtPath, opsPath
}

const ops = `[
  {"name": "zero_out_property", "node": "/", "property": "serial-number"},
  {"name": "add_property", "node": "/chosen", "property": "foo", "value": "bar"}
]`

func TestApplyFile(t *testing.T) {
	blob := fixture(t)
	dir, adtPath, opsPath := writeFiles(t, blob, ops, "ops.json")
	out := filepath.Join(dir, "out.bin")

	res, err := ApplyFile(context.Background(), adtPath, opsPath, &ApplyOptions{Output: out})
	require.NoError(t, err)
	assert.Equal(t, out, res.Output)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, len(blob), res.InputSize)
	assert.Equal(t, 40, res.Growth)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, res.Blob, written)

	p, err := GetProperty(written, "/", "serial-number")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, p.Value)
	p, err = GetProperty(written, "/chosen", "foo")
	require.NoError(t, err)
	assert.Equal(t, "bar", p.String())

	// Input untouched.
	orig, err := os.ReadFile(adtPath)
	require.NoError(t, err)
	assert.Equal(t, blob, orig)
}

func TestApplyFileYAMLBackupAndDefaultOutput(t *testing.T) {
	yamlOps := "- name: add_node\n  node: /arm-io/uart1\n"
	dir, adtPath, opsPath := writeFiles(t, fixture(t), yamlOps, "ops.yaml")
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(DefaultOutput, []byte("previous"), 0o644))

	res, err := ApplyFile(context.Background(), adtPath, opsPath, &ApplyOptions{Backup: true})
	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, res.Output)

	bak, err := os.ReadFile(DefaultOutput + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "previous", string(bak))

	report, err := ValidateFile(DefaultOutput)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Nodes)
}

func TestApplyFileDryRun(t *testing.T) {
	dir, adtPath, opsPath := writeFiles(t, fixture(t), ops, "ops.json")
	out := filepath.Join(dir, "out.bin")
	res, err := ApplyFile(context.Background(), adtPath, opsPath, &ApplyOptions{Output: out, DryRun: true})
	require.NoError(t, err)
	assert.Empty(t, res.Output)
	assert.Equal(t, 2, res.Applied)
	_, err = os.Stat(out)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyFileCustomWriter(t *testing.T) {
	blob := fixture(t)
	_, adtPath, opsPath := writeFiles(t, blob, ops, "ops.json")

	var w writer.MemWriter
	res, err := ApplyFile(context.Background(), adtPath, opsPath, &ApplyOptions{Writer: &w})
	require.NoError(t, err)
	assert.Empty(t, res.Output)
	assert.Equal(t, res.Blob, w.Buf)

	_, err = os.Stat(DefaultOutput)
	assert.True(t, os.IsNotExist(err))
}

func TestApplyFileFailureWritesNothing(t *testing.T) {
	bad := `[
  {"name": "add_node", "node": "/new"},
  {"name": "delete_property", "node": "/chosen", "property": "nope"}
]`
	dir, adtPath, opsPath := writeFiles(t, fixture(t), bad, "ops.json")
	out := filepath.Join(dir, "out.bin")

	res, err := ApplyFile(context.Background(), adtPath, opsPath, &ApplyOptions{Output: out})
	require.ErrorIs(t, err, types.ErrPropertyNotFound)
	var opErr *batch.OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, 1, opErr.Index)
	assert.Equal(t, 1, res.Applied)
	_, err = os.Stat(out)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyBytesBadFieldKeepsEarlierOps(t *testing.T) {
	bad := `[
  {"name": "add_node", "node": "/new"},
  {"name": "add_property", "node": "/", "property": "p", "value": {"type": "u32"}}
]`
	res, err := ApplyBytes(context.Background(), fixture(t), []byte(bad), batch.FormatJSON, nil)
	require.ErrorIs(t, err, types.ErrInvalidOperation)
	var opErr *batch.OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, 1, opErr.Index)
	assert.Equal(t, "add_property", opErr.Name)
	assert.Equal(t, 1, res.Applied)

	_, err = core.ResolvePath(res.Blob, "/new")
	require.NoError(t, err)
}

func TestApplyBytesRejectsCorruptInput(t *testing.T) {
	blob := fixture(t)
	_, err := ApplyBytes(context.Background(), blob[:len(blob)-3], []byte(ops), batch.FormatJSON, nil)
	require.ErrorIs(t, err, types.ErrMalformedInput)

	_, err = ApplyBytes(context.Background(), blob, []byte(`{"name": "x"}`), batch.FormatJSON, nil)
	require.ErrorIs(t, err, types.ErrMalformedInput)
}

func TestEditFile(t *testing.T) {
	blob := fixture(t)
	dir, adtPath, _ := writeFiles(t, blob, ops, "ops.json")
	out := filepath.Join(dir, "out.bin")

	res, err := EditFile(context.Background(), adtPath, []types.EditOp{
		types.OpAddNode{Path: "/arm-io/uart1"},
		types.OpAddProperty{Path: "/arm-io/uart1", Property: "reg", Value: types.Value{Type: types.ValueU32, Text: "0x300"}},
	}, &ApplyOptions{Output: out})
	require.NoError(t, err)
	assert.Equal(t, out, res.Output)
	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, len(blob), res.InputSize)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	p, err := GetProperty(written, "/arm-io/uart1", "reg")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x03, 0, 0}, p.Value)
}

func TestEditFileFailureWritesNothing(t *testing.T) {
	dir, adtPath, _ := writeFiles(t, fixture(t), ops, "ops.json")
	out := filepath.Join(dir, "out.bin")

	res, err := EditFile(context.Background(), adtPath, []types.EditOp{
		types.OpReplaceProperty{Path: "/chosen", Property: "firmware-version", Value: "iBoot-1234567890"},
	}, &ApplyOptions{Output: out})
	require.ErrorIs(t, err, types.ErrInvalidOperation)
	require.NotNil(t, res)
	assert.Zero(t, res.Applied)
	assert.Empty(t, res.Output)
	assert.NoFileExists(t, out)
}

func TestEditRejectsCorruptInput(t *testing.T) {
	blob := fixture(t)
	_, err := Edit(context.Background(), blob[:len(blob)-3], []types.EditOp{types.OpAddNode{Path: "/x"}}, nil)
	require.ErrorIs(t, err, types.ErrMalformedInput)

	res, err := Edit(context.Background(), blob, []types.EditOp{types.OpAddNode{Path: "/x"}}, &ApplyOptions{SkipValidation: true})
	require.NoError(t, err)
	_, err = core.ResolvePath(res.Blob, "/x")
	require.NoError(t, err)
}

func TestApplyFileMissingInputs(t *testing.T) {
	dir := t.TempDir()
	_, err := ApplyFile(context.Background(), filepath.Join(dir, "none.bin"), filepath.Join(dir, "ops.json"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestTreeAndDiff(t *testing.T) {
	before := fixture(t)
	var buf bytes.Buffer
	require.NoError(t, Tree(before, &buf, "/chosen", printer.DefaultOptions()))
	assert.Contains(t, buf.String(), `firmware-version [11] = "iBoot-1234"`)

	after, err := ApplyBytes(context.Background(), append([]byte(nil), before...), []byte(ops), batch.FormatJSON, nil)
	require.NoError(t, err)

	d, err := Diff(before, after.Blob)
	require.NoError(t, err)
	require.True(t, d.Changed())
	added, removed := d.Stats()
	assert.Equal(t, 3, added)
	assert.Equal(t, 2, removed)
	u := d.Unified()
	assert.Contains(t, u, "-   serial-number [4] = 0x04030201 (67305985)")
	assert.Contains(t, u, "+   serial-number [4] = 0x00000000 (0)")
	assert.Contains(t, u, `+     foo [4] = "bar"`)

	same, err := Diff(before, before)
	require.NoError(t, err)
	assert.False(t, same.Changed())
}
