package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fsys FileSystem, name, data string) {
	t.Helper()
	w, err := fsys.Create(name)
	require.NoError(t, err)
	_, err = w.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func exerciseFileSystem(t *testing.T, fsys FileSystem, root string) {
	dir := filepath.Join(root, "results", "run")
	require.NoError(t, fsys.MkdirAll(dir, 0755))
	assert.True(t, fsys.Exists(dir))

	writeFile(t, fsys, filepath.Join(dir, "cutoff_0.10.png"), "a")
	writeFile(t, fsys, filepath.Join(dir, "cutoff_0.20.PNG"), "b")
	writeFile(t, fsys, filepath.Join(dir, "run.gif"), "gif")

	data, err := fsys.ReadFile(filepath.Join(dir, "run.gif"))
	require.NoError(t, err)
	assert.Equal(t, "gif", string(data))

	names, err := fsys.List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"cutoff_0.10.png", "cutoff_0.20.PNG", "run.gif"}, names)

	removed, err := RemoveByExt(fsys, dir, ".png")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	names, err = fsys.List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"run.gif"}, names)

	removed, err = RemoveByExt(fsys, filepath.Join(root, "missing"), ".png")
	require.NoError(t, err)
	assert.Zero(t, removed)

	assert.Error(t, fsys.Remove(filepath.Join(dir, "nope.png")))
	_, err = fsys.ReadFile(filepath.Join(dir, "nope.png"))
	assert.Error(t, err)
}

func TestOSFileSystem(t *testing.T) {
	exerciseFileSystem(t, OSFileSystem{}, t.TempDir())
}

func TestMemoryFileSystem(t *testing.T) {
	exerciseFileSystem(t, NewMemoryFileSystem(), "/mem")
}

func TestMemoryFileSystem_CreateRequiresDir(t *testing.T) {
	m := NewMemoryFileSystem()
	_, err := m.Create("/nowhere/file.png")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = m.List("/nowhere")
	assert.Error(t, err)
}

func TestOSFileSystem_ListSkipsDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.png"), nil, 0644))

	names, err := OSFileSystem{}.List(root)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, names)
}
