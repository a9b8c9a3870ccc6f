package docsync

import (
	"context"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
	"git.home.luguber.info/inful/docsync/internal/logfields"
	"git.home.luguber.info/inful/docsync/internal/metrics"
)

const (
	watchOpChange = "change"
	watchOpUnlink = "unlink"
)

// Watch runs an initial pass and then watches the sources that pass could
// discover. Files created later are not picked up until watching restarts.
//
// Watch returns once the watcher is installed. Events are handled on a
// single goroutine until StopWatching is called or ctx is canceled. Handler
// failures are reported as error events and never stop the watcher. The
// watcher keeps the configuration it started with; a later Initialize does
// not affect a handler that is still running.
func (s *Service) Watch(ctx context.Context) (*SyncResult, error) {
	b, err := s.begin("watch", StateWatching)
	if err != nil {
		return nil, err
	}
	if !b.cfg.Watch {
		s.finish()
		return nil, ferrors.ConfigError("watch mode is disabled in configuration").Build()
	}

	result, err := s.runSync(ctx, b)
	if err != nil {
		s.finish()
		return nil, err
	}

	snapshot := make(map[string]struct{})
	for _, path := range b.discovery.DiscoverFiles(b.cfg.SourcePatterns) {
		snapshot[filepath.Clean(path)] = struct{}{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.finish()
		return nil, ferrors.WatchError("failed to create file watcher").WithCause(err).Build()
	}
	for _, dir := range parentDirs(snapshot) {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			s.finish()
			return nil, ferrors.WatchError("failed to watch directory").
				WithCause(err).
				WithContext("path", dir).
				Build()
		}
	}

	sess := &watchSession{
		bound:   b,
		watcher: watcher,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	s.mu.Lock()
	s.watch = sess
	s.mu.Unlock()

	s.logger.Info("Watching source files", logfields.Count(len(snapshot)))
	go s.watchLoop(ctx, sess, snapshot)
	return result, nil
}

// StopWatching closes the watcher and returns the engine to Initialized.
// Calling it when not watching is a no-op. A handler already running is not
// interrupted.
func (s *Service) StopWatching() error {
	s.mu.Lock()
	sess := s.watch
	if sess == nil {
		s.mu.Unlock()
		return nil
	}
	s.watch = nil
	s.state = StateInitialized
	s.mu.Unlock()

	sess.close()
	s.logger.Info("Stopped watching source files")
	return nil
}

// WatchDone returns a channel closed when the current watch loop exits, or
// nil when not watching.
func (s *Service) WatchDone() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watch == nil {
		return nil
	}
	return s.watch.done
}

func (w *watchSession) close() {
	w.once.Do(func() {
		close(w.stop)
		_ = w.watcher.Close()
	})
}

// endWatch releases sess when the loop exits on its own.
func (s *Service) endWatch(sess *watchSession) {
	sess.close()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watch == sess {
		s.watch = nil
		s.state = StateInitialized
	}
}

func (s *Service) watchLoop(ctx context.Context, sess *watchSession, snapshot map[string]struct{}) {
	defer close(sess.done)
	defer s.endWatch(sess)

	timers := make(map[string]*time.Timer)
	fired := make(chan string)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sess.stop:
			return
		case ev, ok := <-sess.watcher.Events:
			if !ok {
				return
			}
			path := filepath.Clean(ev.Name)
			if _, watched := snapshot[path]; !watched {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if t, pending := timers[path]; pending {
				t.Stop()
			}
			timers[path] = time.AfterFunc(s.debounce, func() {
				select {
				case fired <- path:
				case <-sess.stop:
				case <-ctx.Done():
				}
			})
		case path := <-fired:
			delete(timers, path)
			s.handleWatchedPath(ctx, sess.bound, path)
		case err, ok := <-sess.watcher.Errors:
			if !ok {
				return
			}
			s.watchFailed(ctx, "", ferrors.WatchError("file watcher error").WithCause(err).Build())
		}
	}
}

// handleWatchedPath runs the add/change pipeline when path exists and the
// unlink pipeline otherwise.
func (s *Service) handleWatchedPath(ctx context.Context, b *binding, path string) {
	exists, err := s.files.Exists(path)
	if err != nil {
		s.watchFailed(ctx, path, err)
		return
	}
	if !exists {
		s.recorder.IncWatchEvent(watchOpUnlink)
		if err := s.removeSource(ctx, b, path); err != nil {
			s.watchFailed(ctx, path, err)
		}
		return
	}

	s.recorder.IncWatchEvent(watchOpChange)
	doc, outcome, err := s.processSource(b, path)
	s.recorder.IncFileOutcome(outcome)
	if err != nil {
		s.watchFailed(ctx, path, err)
		return
	}
	if outcome == metrics.FileUnchanged {
		return
	}
	s.logger.Info("Synced changed file", logfields.File(path), logfields.Dest(doc.DestPath), logfields.Op(string(outcome)))
	s.emit(ctx, Event{Kind: EventFileSynced, Path: path, Dest: doc.DestPath})
}

// removeSource deletes the destination generated for a removed source and
// forgets its checksum.
func (s *Service) removeSource(ctx context.Context, b *binding, source string) error {
	typ, err := b.classify(source)
	if err != nil {
		return err
	}
	dest, err := b.mapper.MapPath(source, typ, b.outputDir)
	if err != nil {
		return err
	}
	if err := s.files.DeleteFile(dest); err != nil {
		return err
	}
	s.cache.remove(source)
	s.recorder.AddFilesRemoved(1)
	s.logger.Info("Removed file for deleted source", logfields.File(source), logfields.Dest(dest))
	s.emit(ctx, Event{Kind: EventFileRemoved, Path: source, Dest: dest})
	return nil
}

func (s *Service) watchFailed(ctx context.Context, path string, err error) {
	s.logger.Error("Watch handler failed", logfields.File(path), logfields.Error(err))
	s.emit(ctx, Event{Kind: EventError, Path: path, Error: err.Error()})
}

func parentDirs(paths map[string]struct{}) []string {
	seen := make(map[string]struct{})
	dirs := make([]string, 0, len(paths))
	for p := range paths {
		dir := filepath.Dir(p)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}
