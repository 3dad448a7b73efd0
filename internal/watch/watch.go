// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package watch reruns a job whenever a single file changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	xglog "github.com/ManuGH/m3urenew/internal/log"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const runKey = "run"

// Func is the job executed after the watched file changed.
type Func func(ctx context.Context) error

// Watcher observes one file and runs a Func after changes settle.
//
// The parent directory is watched rather than the file itself so that
// editors and tools that replace the file by rename keep being tracked.
type Watcher struct {
	path     string
	debounce time.Duration
	fn       Func

	fsw    *fsnotify.Watcher
	group  singleflight.Group
	dirty  atomic.Bool
	runs   atomic.Int64
	wg     sync.WaitGroup
	logger zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

// New creates a Watcher for path. Call Run to start processing events and
// Close to release the underlying inotify/kqueue handle.
func New(path string, debounce time.Duration, fn Func) (*Watcher, error) {
	if fn == nil {
		return nil, errors.New("watch: nil func")
	}
	if debounce <= 0 {
		return nil, fmt.Errorf("watch: debounce must be positive, got %s", debounce)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		fn:       fn,
		fsw:      fsw,
		logger:   xglog.WithComponent("watch"),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Runs reports how many times the job has been executed.
func (w *Watcher) Runs() int64 { return w.runs.Load() }

// Run processes file events until ctx is cancelled or the watcher is closed.
// It waits for an in-flight job to finish before returning.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info().
		Str(xglog.FieldEvent, "watch.started").
		Str(xglog.FieldPath, w.path).
		Dur("debounce", w.debounce).
		Msg("watching input for changes")

	defer w.wg.Wait()

	// Debounce: every relevant event re-arms the timer; the job runs once
	// the file has been quiet for w.debounce.
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str(xglog.FieldEvent, "watch.stopped").Msg("watcher stopped")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().
				Str(xglog.FieldEvent, "watch.file_changed").
				Str("op", event.Op.String()).
				Msg("input changed")

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.dirty.Store(true)
			w.wg.Add(1)
			go func() {
				defer w.wg.Done()
				w.trigger(ctx)
			}()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().
				Err(err).
				Str(xglog.FieldEvent, "watch.error").
				Msg("file watcher error")
		}
	}
}

// trigger runs the job through a singleflight group so that runs never
// overlap. A change that lands while a run is in flight marks the watcher
// dirty, and the job is repeated once that run returns.
func (w *Watcher) trigger(ctx context.Context) {
	for w.dirty.Load() && ctx.Err() == nil {
		_, _, _ = w.group.Do(runKey, func() (interface{}, error) {
			for w.dirty.Swap(false) {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				w.execute(ctx)
			}
			return nil, nil
		})
	}
}

func (w *Watcher) execute(ctx context.Context) {
	n := w.runs.Add(1)
	w.logger.Info().
		Str(xglog.FieldEvent, "watch.triggered").
		Int64("run", n).
		Msg("input changed, running")
	if err := w.fn(ctx); err != nil {
		w.logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "watch.run_failed").
			Msg("run after change failed")
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	// A rename onto the path arrives as Create.
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// Close stops the underlying file watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.closeErr = w.fsw.Close()
	})
	return w.closeErr
}
