package depositor

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/psdi-data/depositor/pkg/metadata"
)

// WatchValidate validates the document at opts.Path, then re-validates it
// whenever the file is saved with changed content, reporting every outcome
// through onResult. Editors that replace the file on save (rename, remove and
// recreate) are handled by watching the containing directory. The loop runs
// until ctx is cancelled.
func (d *Depositor) WatchValidate(ctx context.Context, opts ValidateOptions, onResult func(metadata.Document, error)) error {
	if opts.Path == "" {
		return fmt.Errorf("metadata path is required")
	}
	if onResult == nil {
		return fmt.Errorf("result callback is required")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch metadata file: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	watchDir := filepath.Dir(opts.Path)
	if err := watcher.Add(watchDir); err != nil {
		return fmt.Errorf("watch metadata directory: %w", err)
	}

	target := filepath.Base(opts.Path)

	var (
		hasHash  bool
		lastHash [sha256.Size]byte
	)

	process := func() {
		raw, err := os.ReadFile(opts.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return
			}
			onResult(nil, fmt.Errorf("unable to read metadata file: %w", err))
			return
		}
		sum := sha256.Sum256(raw)
		if hasHash && sum == lastHash {
			return
		}
		lastHash = sum
		hasHash = true

		doc, err := d.Validate(ctx, opts)
		onResult(doc, err)
	}

	process()

	var (
		pending     bool
		pendingFrom time.Time
	)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if pending && time.Since(pendingFrom) >= 120*time.Millisecond {
				process()
				pending = false
			}
		case event, ok := <-watcher.Events:
			if !ok {
				continue
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Chmod|fsnotify.Remove) != 0 {
				pending = true
				pendingFrom = time.Now()
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				continue
			}
			onResult(nil, fmt.Errorf("metadata file watcher error: %w", watchErr))
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
