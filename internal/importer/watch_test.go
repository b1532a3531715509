package importer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcher_IsSeedFile(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, "pathways.yaml"), nil)
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.True(t, w.isSeedFile(filepath.Join(dir, "pathways.yaml")))
	assert.False(t, w.isSeedFile(filepath.Join(dir, "other.yaml")))
	assert.False(t, w.isSeedFile(filepath.Join(dir, "pathways.yaml.swp")))
}

func TestWatcher_ReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pathways.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("version: 1\npathways: []\n"), 0o644))

	select {
	case got := <-w.Changes:
		assert.Equal(t, w.File, got)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for seed change")
	}
}
