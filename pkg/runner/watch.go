package runner

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/graphcheck/pkg/errors"
)

// WatchFunc receives a report for every file whose content changed, or the
// error that prevented checking it.
type WatchFunc func(rep *Report, err error)

// Watch checks paths once and then again whenever their content changes,
// until ctx is done. The parent directories are watched rather than the
// files so that editors replacing a file by rename are still seen. Writes
// are debounced, and a file whose content hash is unchanged is not
// reported again.
func (r *Runner) Watch(ctx context.Context, paths []string, fn WatchFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	defer w.Close()

	tracked := make(map[string]string, len(paths)) // abs path -> last content hash
	var dirs []string
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "watch %s", p)
		}
		tracked[abs] = ""
		if dir := filepath.Dir(abs); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "watch %s", dir)
		}
	}
	r.Logger.Debug("watching", "files", len(tracked), "dirs", len(dirs))

	recheck := func(path string) {
		rep, err := r.CheckFile(ctx, path)
		if err != nil {
			tracked[path] = ""
			fn(nil, err)
			return
		}
		if rep.Hash == tracked[path] {
			return
		}
		tracked[path] = rep.Hash
		fn(rep, nil)
	}

	for _, p := range paths {
		abs, _ := filepath.Abs(p)
		recheck(abs)
	}

	debounce := r.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	pending := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if _, ok := tracked[ev.Name]; !ok {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(nil, errors.Wrap(errors.ErrCodeInternal, err, "watch"))

		case <-timer.C:
			names := make([]string, 0, len(pending))
			for name := range pending {
				names = append(names, name)
			}
			slices.Sort(names)
			clear(pending)
			for _, name := range names {
				recheck(name)
			}
		}
	}
}
