package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherInvokesCallbackOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.stl")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	fw, err := NewFileWatcher(20*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 1)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))
	fw.Start()

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	select {
	case p := <-changed:
		assert.Equal(t, path, filepath.Clean(p))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the change callback")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.stl")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	fw, err := NewFileWatcher(200*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 16)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))
	fw.Start()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("burst"), 0o644))
	}

	time.Sleep(600 * time.Millisecond)
	assert.Len(t, changed, 1, "burst of writes collapses into one callback")
}

func TestWatchMissingFile(t *testing.T) {
	fw, err := NewFileWatcher(20*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	err = fw.Watch([]string{filepath.Join(t.TempDir(), "absent.stl")}, func(string) {})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}

func TestRemoveAllStopsCallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "part.stl")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

	fw, err := NewFileWatcher(20*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Close()

	changed := make(chan string, 1)
	require.NoError(t, fw.Watch([]string{path}, func(p string) { changed <- p }))
	fw.Start()
	require.NoError(t, fw.RemoveAll())

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0o644))

	select {
	case <-changed:
		t.Fatal("callback fired after RemoveAll")
	case <-time.After(300 * time.Millisecond):
	}
}
