package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/adtkit/pkg/types"
)

var (
	_ types.Writer = (*FileWriter)(nil)
	_ types.Writer = (*MemWriter)(nil)
	_ types.Writer = (*Discard)(nil)
)

func TestFileWriterCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bin")
	w := &FileWriter{Path: path}
	require.NoError(t, w.WriteADT([]byte{1, 2, 3}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, got)
	_, err = os.Stat(path + BackupSuffix)
	require.ErrorIs(t, err, os.ErrNotExist)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must not be left behind")
}

func TestFileWriterBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adt.bin")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	w := &FileWriter{Path: path, Backup: true}
	require.NoError(t, w.WriteADT([]byte("new")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(got))
	bak, err := os.ReadFile(path + BackupSuffix)
	require.NoError(t, err)
	require.Equal(t, "old", string(bak))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileWriterBadDir(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "missing", "out.bin")}
	require.Error(t, w.WriteADT([]byte{1}))
}

func TestMemWriterCopies(t *testing.T) {
	src := []byte{1, 2}
	var w MemWriter
	require.NoError(t, w.WriteADT(src))
	src[0] = 9
	require.Equal(t, []byte{1, 2}, w.Buf)

	var d Discard
	require.NoError(t, d.WriteADT(src))
	require.Equal(t, 2, d.N)
}
