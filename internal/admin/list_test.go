package admin

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestListPrintsQueues(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"beta", "alpha"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	a, out, _ := newTestAdmin(newFakeKernel())

	require.Equal(t, 0, a.List(dir))
	assert.Equal(t, "/alpha\n/beta\n", out.String())
}

func TestListMissingMount(t *testing.T) {
	a, _, errOut := newTestAdmin(newFakeKernel())

	status := a.List(filepath.Join(t.TempDir(), "no-mqueue"))
	assert.Equal(t, int(unix.ENOSYS), status)
	assert.Contains(t, errOut.String(), "mqueue filesystem not mounted")
}

// syncBuffer guards the output buffer against the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchReportsCreateAndRemove(t *testing.T) {
	dir := t.TempDir()
	out := &syncBuffer{}
	a := &Admin{Queues: newFakeKernel(), Out: out, Err: &syncBuffer{}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx, dir, nil) }()

	// Give the watcher a moment to register before generating events.
	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(dir, "jobs")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	require.NoError(t, os.Remove(path))

	deadline := time.After(5 * time.Second)
	for {
		got := out.String()
		if bytes.Contains([]byte(got), []byte("create /jobs\n")) &&
			bytes.Contains([]byte(got), []byte("remove /jobs\n")) {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("events not observed, output: %q", got)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatchFiltersQueues(t *testing.T) {
	dir := t.TempDir()
	out := &syncBuffer{}
	a := &Admin{Queues: newFakeKernel(), Out: out, Err: &syncBuffer{}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx, dir, []string{"/wanted"}) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wanted"), nil, 0o644))

	deadline := time.After(5 * time.Second)
	for {
		got := out.String()
		if bytes.Contains([]byte(got), []byte("create /wanted\n")) {
			assert.NotContains(t, got, "/ignored")
			break
		}
		select {
		case <-deadline:
			t.Fatalf("event not observed, output: %q", got)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatchMissingMount(t *testing.T) {
	a, _, _ := newTestAdmin(newFakeKernel())
	err := a.Watch(context.Background(), filepath.Join(t.TempDir(), "no-mqueue"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mqueue filesystem not mounted")
}
