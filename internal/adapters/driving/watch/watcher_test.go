package watch

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/helicon-labs/ragview-cli/internal/core/domain"
)

type mockTracker struct {
	mu    sync.Mutex
	names []string
	err   error
}

func (m *mockTracker) Start(_ context.Context, fileName string, content io.Reader, _ int64) (*domain.UploadAck, error) {
	if _, err := io.Copy(io.Discard, content); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.names = append(m.names, fileName)
	return &domain.UploadAck{DocID: "doc-" + fileName}, nil
}

func (m *mockTracker) State() *domain.UploadState { return nil }

func (m *mockTracker) SetObserver(func(domain.UploadState)) {}

func (m *mockTracker) SetOnComplete(func()) {}

func (m *mockTracker) uploaded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

type mockCollection struct {
	mu       sync.Mutex
	refreshes int
}

func (m *mockCollection) Refresh(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes++
	return nil
}

func (m *mockCollection) Remove(context.Context, string) error { return nil }

func (m *mockCollection) ClearAll(context.Context) error { return nil }

func (m *mockCollection) Get(context.Context, string) (*domain.Document, error) {
	return nil, domain.ErrNotFound
}

func (m *mockCollection) Documents() []domain.Document { return nil }

func (m *mockCollection) Loading() bool { return false }

func (m *mockCollection) refreshCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshes
}

func newTestWatcher(tracker *mockTracker, coll *mockCollection) *Watcher {
	w := New(tracker, coll)
	w.SetDebounce(10 * time.Millisecond)
	w.SetLimiter(rate.NewLimiter(rate.Inf, 1))
	return w
}

func TestWatcher_UploadsNewFile(t *testing.T) {
	dir := t.TempDir()
	tracker := &mockTracker{}
	coll := &mockCollection{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := newTestWatcher(tracker, coll)
	go func() { _ = w.Run(ctx, dir) }()

	// Give the watcher time to register
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.pdf"), []byte("pdf bytes"), 0600))

	require.Eventually(t, func() bool {
		return len(tracker.uploaded()) > 0
	}, 3*time.Second, 20*time.Millisecond)

	assert.Contains(t, tracker.uploaded(), "report.pdf")

	require.Eventually(t, func() bool {
		return coll.refreshCount() > 0
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	tracker := &mockTracker{}
	coll := &mockCollection{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := newTestWatcher(tracker, coll)
	go func() { _ = w.Run(ctx, dir) }()

	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte("png"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0600))

	require.Eventually(t, func() bool {
		return len(tracker.uploaded()) > 0
	}, 3*time.Second, 20*time.Millisecond)

	assert.Equal(t, []string{"notes.txt"}, tracker.uploaded())
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := newTestWatcher(&mockTracker{}, &mockCollection{})

	err := w.Run(context.Background(), "/nonexistent/watch/dir")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot watch")
}

func TestWatcher_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	w := newTestWatcher(&mockTracker{}, &mockCollection{})

	err := w.Run(context.Background(), path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())

	w := newTestWatcher(&mockTracker{}, &mockCollection{})

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, dir) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatcher_DebounceCollapsesEventStorm(t *testing.T) {
	dir := t.TempDir()
	tracker := &mockTracker{}
	coll := &mockCollection{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := newTestWatcher(tracker, coll)
	w.SetDebounce(5 * time.Second)
	go func() { _ = w.Run(ctx, dir) }()

	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0600))

	require.Eventually(t, func() bool {
		return len(tracker.uploaded()) == 1
	}, 3*time.Second, 20*time.Millisecond)

	// Repeated writes inside the debounce window are dropped
	require.NoError(t, os.WriteFile(path, []byte("two"), 0600))
	require.NoError(t, os.WriteFile(path, []byte("three"), 0600))
	time.Sleep(300 * time.Millisecond)

	assert.Len(t, tracker.uploaded(), 1)
}
