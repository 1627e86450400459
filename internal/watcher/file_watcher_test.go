package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileWatcher:
// - NewFileWatcher creates watcher for files in existing directories
// - NewFileWatcher returns error when a parent directory is missing
// - A write to a watched file fires the callback after debounce
// - Changes to several watched files are batched into one callback
// - Rapid changes to one file are coalesced and deduplicated
// - Files in the same directory that are not watched are ignored
// - Replacing a watched file by rename still fires the callback
// - Removing a watched file fires the callback
// - Context cancellation stops watcher
// - Stop() before Start() and concurrent Stop() calls are safe

const testDebounce = 50 * time.Millisecond

// startWatcher creates a watcher over files with a short debounce and
// returns a channel receiving every callback batch.
func startWatcher(t *testing.T, ctx context.Context, files ...string) (FileWatcher, <-chan []string) {
	t.Helper()

	w, err := NewFileWatcher(files, nil)
	require.NoError(t, err)
	w.(*fileWatcher).debounceTime = testDebounce
	t.Cleanup(func() { w.Stop() })

	batches := make(chan []string, 10)
	require.NoError(t, w.Start(ctx, func(files []string) {
		batches <- files
	}))

	// Wait for watcher to initialize
	time.Sleep(100 * time.Millisecond)
	return w, batches
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case files := <-batches:
		return files
	case <-time.After(2 * time.Second):
		t.Fatal("Callback not called after timeout")
		return nil
	}
}

func assertNoBatch(t *testing.T, batches <-chan []string) {
	t.Helper()
	select {
	case files := <-batches:
		t.Fatalf("unexpected callback with %v", files)
	case <-time.After(4 * testDebounce):
	}
}

func createFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewFileWatcher_Success(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	header := createFile(t, filepath.Join(tempDir, "includes", "lib.h"), "int x;\n")
	config := createFile(t, filepath.Join(tempDir, "cbindgen.toml"), "")

	w, err := NewFileWatcher([]string{header, config}, nil)
	require.NoError(t, err)
	require.NotNil(t, w)

	require.NoError(t, w.Stop())
}

func TestNewFileWatcher_MissingDirectory(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nonexistent", "lib.h")

	w, err := NewFileWatcher([]string{missing}, nil)
	assert.Error(t, err)
	assert.Nil(t, w)
}

func TestFileWatcher_SingleFileChange(t *testing.T) {
	t.Parallel()

	header := createFile(t, filepath.Join(t.TempDir(), "lib.h"), "int x;\n")
	_, batches := startWatcher(t, context.Background(), header)

	require.NoError(t, os.WriteFile(header, []byte("int y;\n"), 0644))

	assert.Equal(t, []string{header}, waitBatch(t, batches))
}

func TestFileWatcher_MultipleFilesBatched(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	header := createFile(t, filepath.Join(tempDir, "includes", "lib.h"), "")
	tmpl := createFile(t, filepath.Join(tempDir, "includes", "lib-template.hpp"), "")
	config := createFile(t, filepath.Join(tempDir, "cbindgen.toml"), "")
	_, batches := startWatcher(t, context.Background(), header, tmpl, config)

	require.NoError(t, os.WriteFile(tmpl, []byte("[[ c_api ]]\n"), 0644))
	time.Sleep(testDebounce / 5)
	require.NoError(t, os.WriteFile(config, []byte("include_guard = \"G\"\n"), 0644))
	time.Sleep(testDebounce / 5)
	require.NoError(t, os.WriteFile(header, []byte("int x;\n"), 0644))

	files := waitBatch(t, batches)
	assert.ElementsMatch(t, []string{header, tmpl, config}, files)
	assert.IsIncreasing(t, files)
}

func TestFileWatcher_Deduplication(t *testing.T) {
	t.Parallel()

	header := createFile(t, filepath.Join(t.TempDir(), "lib.h"), "")
	_, batches := startWatcher(t, context.Background(), header)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(header, []byte{byte('a' + i)}, 0644))
		time.Sleep(testDebounce / 10)
	}

	assert.Equal(t, []string{header}, waitBatch(t, batches))
	assertNoBatch(t, batches)
}

func TestFileWatcher_IgnoresUnwatchedFiles(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	header := createFile(t, filepath.Join(tempDir, "lib.h"), "")
	_, batches := startWatcher(t, context.Background(), header)

	// The generated output sits next to the inputs and must not retrigger.
	createFile(t, filepath.Join(tempDir, "lib.hpp"), "// generated\n")
	createFile(t, filepath.Join(tempDir, "notes.txt"), "x")

	assertNoBatch(t, batches)
}

func TestFileWatcher_ReplacedByRename(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	tmpl := createFile(t, filepath.Join(tempDir, "lib-template.hpp"), "old\n")
	_, batches := startWatcher(t, context.Background(), tmpl)

	// Editors often save to a temp file and rename it over the original.
	tmp := createFile(t, filepath.Join(tempDir, ".lib-template.hpp.swp"), "new\n")
	require.NoError(t, os.Rename(tmp, tmpl))

	assert.Equal(t, []string{tmpl}, waitBatch(t, batches))
}

func TestFileWatcher_FileRemoved(t *testing.T) {
	t.Parallel()

	header := createFile(t, filepath.Join(t.TempDir(), "lib.h"), "")
	_, batches := startWatcher(t, context.Background(), header)

	require.NoError(t, os.Remove(header))

	assert.Equal(t, []string{header}, waitBatch(t, batches))
}

func TestFileWatcher_ContextCancellation(t *testing.T) {
	t.Parallel()

	header := createFile(t, filepath.Join(t.TempDir(), "lib.h"), "")
	ctx, cancel := context.WithCancel(context.Background())
	w, batches := startWatcher(t, ctx, header)

	cancel()
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(header, []byte("x"), 0644))
	assertNoBatch(t, batches)

	// The watch goroutine has exited, so Stop returns promptly.
	require.NoError(t, w.Stop())
}

func TestFileWatcher_StopBeforeStart(t *testing.T) {
	t.Parallel()

	header := createFile(t, filepath.Join(t.TempDir(), "lib.h"), "")
	w, err := NewFileWatcher([]string{header}, nil)
	require.NoError(t, err)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestFileWatcher_ConcurrentStop(t *testing.T) {
	t.Parallel()

	header := createFile(t, filepath.Join(t.TempDir(), "lib.h"), "")
	w, _ := startWatcher(t, context.Background(), header)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Stop()
		}()
	}
	wg.Wait()
}
