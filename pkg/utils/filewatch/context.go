package filewatch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// UntilModifyContext returns a context that is canceled
// when one of target files is modified (= written, created, removed, or renamed).
//
// For a regular file, its directory is watched and events are filtered by the file name,
// so replacing the file by rename (as editors and config mounts do) is also noticed.
// For a directory, any change in it cancels the context.
//
// # Args
//
// - ctx: context.Context
//
// - targets ...string: paths of files or directories to be watched.
//
// # Returns
//
// - context.Context: canceled when one of targets is modified.
// context.Cause tells which one.
//
// - func(): cancel function. Call it to stop watching.
//
// - error: error caused when it fails to start watching files.
// If error is not nil, both of the the context and the cancel function are nil.
func UntilModifyContext(ctx context.Context, targets ...string) (context.Context, func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	// watched directory -> names in it to be reported. nil means everything.
	filter := map[string]map[string]struct{}{}
	for _, t := range targets {
		abs, err := filepath.Abs(t)
		if err != nil {
			w.Close()
			return nil, nil, err
		}
		stat, err := os.Stat(abs)
		if err != nil {
			w.Close()
			return nil, nil, err
		}

		if stat.IsDir() {
			filter[abs] = nil
			continue
		}
		dir, name := filepath.Split(abs)
		dir = filepath.Clean(dir)
		names, seen := filter[dir]
		if seen && names == nil {
			continue
		}
		if names == nil {
			names = map[string]struct{}{}
			filter[dir] = names
		}
		names[name] = struct{}{}
	}

	for dir := range filter {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, nil, err
		}
	}

	cctx, cancel := context.WithCancelCause(ctx)
	go func() {
		defer w.Close()
		for {
			select {
			case <-cctx.Done():
				return
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				cancel(fmt.Errorf("watching files failed: %w", err))
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				dir, name := filepath.Split(event.Name)
				names, watched := filter[filepath.Clean(dir)]
				if !watched {
					continue
				}
				if names != nil {
					if _, ok := names[name]; !ok {
						continue
					}
				}
				if event.Op == fsnotify.Chmod {
					continue
				}
				cancel(fmt.Errorf("%s is updated (%s)", event.Name, event.Op.String()))
			}
		}
	}()

	return cctx, func() { cancel(nil) }, nil
}
