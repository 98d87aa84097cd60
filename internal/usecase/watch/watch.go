// Where: internal/usecase/watch/watch.go
// What: Regenerate collections when their directories change.
// Why: Keep generated tables current during development without rerunning go generate.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/poruru-code/assetenum/internal/infra/ui"
)

// DefaultDebounce coalesces bursts of events (editors often write several times).
const DefaultDebounce = 300 * time.Millisecond

var errNoRoots = errors.New("nothing to watch")

// Watcher runs Regenerate once at start and again after every quiet period
// following a change below Roots.
type Watcher struct {
	UI         ui.UserInterface
	Roots      []string
	Debounce   time.Duration
	Regenerate func() error
	// Ignore reports paths whose events never trigger a run, such as the
	// generated outputs themselves.
	Ignore func(path string) bool
}

// Run blocks until ctx is done. Regeneration errors are reported and the
// loop keeps going; watcher setup errors are returned.
func (w Watcher) Run(ctx context.Context) error {
	if len(w.Roots) == 0 {
		return errNoRoots
	}
	out := w.UI
	if out == nil {
		out = ui.Discard()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range w.Roots {
		if err := addTree(watcher, root); err != nil {
			return err
		}
		out.Detail(fmt.Sprintf("watching %s", root))
	}

	w.regenerate(out)

	timer := newStoppedTimer()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.Ignore != nil && w.Ignore(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						out.Warn(err.Error())
					}
				}
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				out.Detail(fmt.Sprintf("%s %s", event.Op, event.Name))
				resetTimer(timer, debounce)
			}

		case <-timer.C:
			w.regenerate(out)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			out.Warn(fmt.Sprintf("watcher: %v", err))
		}
	}
}

func (w Watcher) regenerate(out ui.UserInterface) {
	if w.Regenerate == nil {
		return
	}
	if err := w.Regenerate(); err != nil {
		out.Warn(fmt.Sprintf("✗ %v", err))
	}
}

// addTree watches root and every directory below it. Symlinked directories
// are not followed, matching the scanner.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		if !entry.IsDir() {
			return nil
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func newStoppedTimer() *time.Timer {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	return timer
}

func resetTimer(timer *time.Timer, d time.Duration) {
	timer.Stop()
	timer.Reset(d)
}
