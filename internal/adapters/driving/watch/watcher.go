// Package watch uploads new files from a watched directory.
//
// Dropping a file into the watched directory uploads it to the backend
// and refreshes the document collection, so a directory can act as an
// ingestion inbox.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/helicon-labs/ragview-cli/internal/core/ports/driving"
	"github.com/helicon-labs/ragview-cli/internal/logger"
)

// DefaultExtensions are the file types accepted for upload.
var DefaultExtensions = []string{".pdf", ".txt", ".md"}

// defaultDebounce collapses the event storm editors and copies produce
// for a single file.
const defaultDebounce = 2 * time.Second

// Watcher turns filesystem events in one directory into uploads.
type Watcher struct {
	uploads    driving.UploadTracker
	collection driving.DocumentCollection

	// limiter caps the upload rate so a bulk drop does not flood the
	// backend's ingestion pipeline.
	limiter *rate.Limiter

	exts     map[string]struct{}
	debounce time.Duration

	mu   sync.Mutex
	seen map[string]time.Time
}

// New creates a watcher over the given services.
func New(uploads driving.UploadTracker, collection driving.DocumentCollection) *Watcher {
	exts := make(map[string]struct{}, len(DefaultExtensions))
	for _, ext := range DefaultExtensions {
		exts[ext] = struct{}{}
	}

	return &Watcher{
		uploads:    uploads,
		collection: collection,
		limiter:    rate.NewLimiter(rate.Every(2*time.Second), 3),
		exts:       exts,
		debounce:   defaultDebounce,
		seen:       make(map[string]time.Time),
	}
}

// SetDebounce overrides the per-file debounce window.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// SetLimiter overrides the upload rate limiter.
func (w *Watcher) SetLimiter(l *rate.Limiter) {
	w.limiter = l
}

// Run watches dir until ctx is cancelled. Files appearing in dir with
// an accepted extension are uploaded; each successful upload triggers
// a collection refresh. Upload failures are reported and watching
// continues.
func (w *Watcher) Run(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot watch %s: not a directory", dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logger.Info("Watching %s", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !w.eligible(ev.Name) {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return err
			}
			w.handle(ctx, ev.Name)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// eligible reports whether path should be uploaded: accepted extension
// and outside the debounce window.
func (w *Watcher) eligible(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := w.exts[ext]; !ok {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if last, ok := w.seen[path]; ok && now.Sub(last) < w.debounce {
		return false
	}
	w.seen[path] = now
	return true
}

func (w *Watcher) handle(ctx context.Context, path string) {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("Skipping %s: %v", path, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		logger.Warn("Skipping %s: %v", path, err)
		return
	}

	if _, err := w.uploads.Start(ctx, filepath.Base(path), f, info.Size()); err != nil {
		logger.Error("Upload of %s failed: %v", path, err)
		return
	}

	if err := w.collection.Refresh(ctx); err != nil {
		logger.Warn("Refresh after upload failed: %v", err)
	}
}
