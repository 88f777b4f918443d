package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadReturnsWritableCopy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adt.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3, 4}, 0o644))

	data, err := Load(path, 64)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, data)
	require.GreaterOrEqual(t, cap(data), 68)

	data[0] = 9
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, byte(1), onDisk[0])
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), 0)
	require.ErrorIs(t, err, os.ErrNotExist)
}
