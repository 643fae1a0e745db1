// Package watch monitors a drop directory for new chat exports and
// hands finished files to an ingest callback.
package watch

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay gives the writing process time to finish before the
// file is ingested.
const settleDelay = 500 * time.Millisecond

// Handler ingests one export file. Errors are reported but do not
// stop the watch loop.
type Handler func(path string) error

// Run watches dir until ctx is cancelled. Existing files are not
// replayed; only newly created or renamed-in exports are ingested.
func Run(ctx context.Context, dir string, handle Handler) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("watch dir: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !IsExport(ev.Name) {
				continue
			}
			select {
			case <-time.After(settleDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
			if err := handle(ev.Name); err != nil {
				fmt.Fprintf(os.Stderr, "wachat: ingest %s: %v\n", ev.Name, err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "wachat: watch: %v\n", err)
		}
	}
}

// IsExport reports whether path looks like a chat export.
func IsExport(path string) bool {
	return strings.HasSuffix(path, ".txt") || strings.HasSuffix(path, ".txt.zst")
}
