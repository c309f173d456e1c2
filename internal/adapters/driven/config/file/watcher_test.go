package file

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcher_DebouncesWrites(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	writeFile(t, path, "[AUTH]\n")

	w, err := NewWatcher(50 * time.Millisecond)
	require.NoError(t, err)

	var calls atomic.Int32
	watched, err := w.Watch(path, func() { calls.Add(1) })
	require.NoError(t, err)
	require.True(t, watched)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	for i := 0; i < 5; i++ {
		writeFile(t, path, "[AUTH]\npileus_username = alice\n")
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	require.NoError(t, w.Close())
}

func TestWatcher_AtomicReplace(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	writeFile(t, path, "[AUTH]\n")

	w, err := NewWatcher(20 * time.Millisecond)
	require.NoError(t, err)

	changed := make(chan struct{}, 1)
	_, err = w.Watch(path, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	w.Start(context.Background())

	store := NewCredentialsStore(path, envMap(nil))
	_, err = store.Generate(true)
	require.NoError(t, err)

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification after atomic replace")
	}
	require.NoError(t, w.Close())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	writeFile(t, path, "[AUTH]\n")

	w, err := NewWatcher(20 * time.Millisecond)
	require.NoError(t, err)

	var calls atomic.Int32
	_, err = w.Watch(path, func() { calls.Add(1) })
	require.NoError(t, err)
	w.Start(context.Background())

	writeFile(t, filepath.Join(dir, "other.txt"), "x")
	time.Sleep(150 * time.Millisecond)

	assert.Zero(t, calls.Load())
	require.NoError(t, w.Close())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	w, err := NewWatcher(0)
	require.NoError(t, err)

	watched, err := w.Watch(filepath.Join(t.TempDir(), "missing", "config.ini"), func() {})

	require.NoError(t, err)
	assert.False(t, watched)
	require.NoError(t, w.Close())
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	w, err := NewWatcher(0)
	require.NoError(t, err)
	_, err = w.Watch(filepath.Join(dir, "settings.toml"), func() {})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	cancel()

	require.NoError(t, w.Close())
	_, statErr := os.Stat(dir)
	assert.NoError(t, statErr)
}
