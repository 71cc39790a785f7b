// Package notify provides Notifier implementations.
//
// Notifications are an injected capability: state owners report
// successes and failures through the driven.Notifier port, and the
// active driving adapter decides how to present them.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/helicon-labs/ragview-cli/internal/core/ports/driven"
)

// Ensure implementations satisfy the interface.
var (
	_ driven.Notifier = (*Writer)(nil)
	_ driven.Notifier = (*Recorder)(nil)
)

// Writer prints notices to an io.Writer, one line each.
// The CLI wires it to stderr so notices never mix with command output.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a writer-backed notifier.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Notify prints the notice.
func (w *Writer) Notify(n driven.Notice) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "%s: %s - %s\n", n.Level, n.Title, n.Description)
}

// Recorder keeps notices in memory. The TUI polls it for its status
// bar; tests use it to assert on emitted notices.
type Recorder struct {
	mu      sync.RWMutex
	notices []driven.Notice
}

// NewRecorder creates an in-memory notifier.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify records the notice.
func (r *Recorder) Notify(n driven.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

// Last returns the most recent notice, or nil if none was emitted.
func (r *Recorder) Last() *driven.Notice {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.notices) == 0 {
		return nil
	}
	n := r.notices[len(r.notices)-1]
	return &n
}

// All returns a snapshot of every recorded notice, oldest first.
func (r *Recorder) All() []driven.Notice {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]driven.Notice, len(r.notices))
	copy(out, r.notices)
	return out
}

// Reset drops all recorded notices.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = nil
}
