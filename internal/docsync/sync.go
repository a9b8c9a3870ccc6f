package docsync

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsync/internal/discovery"
	"git.home.luguber.info/inful/docsync/internal/docmodel"
	"git.home.luguber.info/inful/docsync/internal/fileops"
	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
	"git.home.luguber.info/inful/docsync/internal/frontmatter"
	"git.home.luguber.info/inful/docsync/internal/logfields"
	"git.home.luguber.info/inful/docsync/internal/metrics"
)

// Sync runs one full pass: every discovered source is processed
// independently, then orphans are removed when cleaning is enabled.
//
// Per-file failures are recorded in the result. An error is returned only
// when the pass could not start or discovery failed. ctx is passed to
// listeners; the pass itself always runs to completion.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	b, err := s.begin("sync", StateSyncing)
	if err != nil {
		return nil, err
	}
	defer s.finish()
	return s.runSync(ctx, b)
}

func (s *Service) runSync(ctx context.Context, b *binding) (*SyncResult, error) {
	start := time.Now()
	syncID := uuid.NewString()
	log := s.logger.With(logfields.SyncID(syncID))
	result := newSyncResult(syncID)

	sources, err := s.discover(b)
	if err != nil {
		log.Error("Discovery failed", logfields.Error(err))
		s.recorder.IncSyncOutcome(metrics.SyncFailed)
		s.emit(ctx, Event{Kind: EventError, SyncID: syncID, Error: err.Error()})
		return nil, err
	}
	log.Info("Starting sync", logfields.Count(len(sources)))

	for _, source := range sources {
		doc, outcome, err := s.processSource(b, source)
		s.recorder.IncFileOutcome(outcome)
		if err != nil {
			result.Errors = append(result.Errors, newSyncError(source, err))
			log.Warn("Failed to sync file", logfields.File(source), logfields.Error(err))
			continue
		}
		result.FilesProcessed++
		switch outcome {
		case metrics.FileAdded:
			result.FilesAdded = append(result.FilesAdded, doc.DestPath)
		case metrics.FileUpdated:
			result.FilesUpdated = append(result.FilesUpdated, doc.DestPath)
		}
		if outcome != metrics.FileUnchanged {
			log.Debug("Synced file", logfields.File(source), logfields.Dest(doc.DestPath), logfields.Op(string(outcome)))
			s.emit(ctx, Event{Kind: EventFileSynced, SyncID: syncID, Path: source, Dest: doc.DestPath})
		}
	}

	if b.cfg.Clean {
		removed, err := s.cleanOrphans(ctx, b, syncID, sources)
		if err != nil {
			result.Errors = append(result.Errors, newSyncError("", err))
			log.Warn("Cleanup incomplete", logfields.Error(err))
		}
		result.FilesRemoved = append(result.FilesRemoved, removed...)
	}

	elapsed := time.Since(start)
	result.DurationMS = elapsed.Milliseconds()
	s.recorder.ObserveSyncDuration(elapsed)
	if result.HasErrors() {
		s.recorder.IncSyncOutcome(metrics.SyncWithErrors)
	} else {
		s.recorder.IncSyncOutcome(metrics.SyncSuccess)
	}

	log.Info("Sync complete",
		slog.Int("processed", result.FilesProcessed),
		slog.Int("added", len(result.FilesAdded)),
		slog.Int("updated", len(result.FilesUpdated)),
		slog.Int("removed", len(result.FilesRemoved)),
		slog.Int("errors", len(result.Errors)),
		logfields.DurationMS(result.DurationMS))
	s.emit(ctx, Event{Kind: EventComplete, SyncID: syncID, Result: result})
	return result, nil
}

// processSource classifies source and runs it through the file pipeline.
func (s *Service) processSource(b *binding, source string) (*DocumentationFile, metrics.FileOutcome, error) {
	typ, err := b.classify(source)
	if err != nil {
		return nil, metrics.FileFailed, err
	}
	return s.processFile(b, source, typ)
}

// pipeline steps, used to classify filesystem failures.
const (
	stepRead   = "read"
	stepParse  = "parse"
	stepInject = "inject"
	stepMap    = "map"
	stepMkdir  = "mkdir"
	stepWrite  = "write"
)

type stepError struct {
	step string
	err  error
}

func (e *stepError) Error() string { return e.err.Error() }

func (e *stepError) Unwrap() error { return e.err }

func atStep(step string, err error) error {
	return &stepError{step: step, err: err}
}

// processFile reads, annotates and writes one source. The destination is
// written only when the injected content differs from what this Service last
// wrote for the source.
func (s *Service) processFile(b *binding, source string, typ docmodel.DocumentationType) (*DocumentationFile, metrics.FileOutcome, error) {
	content, err := s.files.ReadFile(source)
	if err != nil {
		return nil, metrics.FileFailed, atStep(stepRead, err)
	}
	modified, err := s.files.ModificationTime(source)
	if err != nil {
		return nil, metrics.FileFailed, atStep(stepRead, err)
	}

	name := discovery.ExtractName(source, typ)
	fm, err := frontmatter.Parse(content)
	if err != nil {
		return nil, metrics.FileFailed, atStep(stepParse, err)
	}
	if fm == nil {
		fm = frontmatter.GenerateDefault(name, typ)
	}

	if b.cfg.Validate {
		for _, issue := range frontmatter.Validate(fm) {
			s.logger.Warn("Frontmatter validation failed",
				logfields.File(source),
				logfields.DocType(string(typ)),
				logfields.Error(issue))
		}
	}

	injected, err := frontmatter.Inject(content, fm)
	if err != nil {
		return nil, metrics.FileFailed, atStep(stepInject, err)
	}
	dest, err := b.mapper.MapPath(source, typ, b.outputDir)
	if err != nil {
		return nil, metrics.FileFailed, atStep(stepMap, err)
	}
	if err := b.mapper.EnsureDirectory(filepath.Dir(dest)); err != nil {
		return nil, metrics.FileFailed, atStep(stepMkdir, err)
	}

	doc := &DocumentationFile{
		SourcePath:   source,
		DestPath:     dest,
		Type:         typ,
		Name:         name,
		Frontmatter:  fm,
		Content:      injected,
		LastModified: modified,
		Checksum:     fileops.Checksum(injected),
	}

	previous, seen := s.cache.get(source)
	if seen && previous == doc.Checksum {
		return doc, metrics.FileUnchanged, nil
	}
	if err := s.files.WriteFile(dest, injected); err != nil {
		return nil, metrics.FileFailed, atStep(stepWrite, err)
	}
	s.cache.set(source, doc.Checksum)

	if seen {
		return doc, metrics.FileUpdated, nil
	}
	return doc, metrics.FileAdded, nil
}

// newSyncError records err for file. Every per-file failure is recoverable.
func newSyncError(file string, err error) SyncError {
	return SyncError{
		File:        file,
		Error:       err.Error(),
		Type:        errorTypeOf(err),
		Recoverable: true,
	}
}

func errorTypeOf(err error) ErrorType {
	switch ferrors.GetCategory(err) {
	case ferrors.CategoryParse:
		return ErrorTypeParse
	case ferrors.CategoryValidation:
		return ErrorTypeValidate
	case ferrors.CategoryFileSystem:
		var se *stepError
		if errors.As(err, &se) && (se.step == stepWrite || se.step == stepMkdir) {
			return ErrorTypeWrite
		}
	}
	return ErrorTypeUnknown
}

func validationSyncError(file string, issue frontmatter.ValidationIssue) SyncError {
	return SyncError{
		File:        file,
		Error:       issue.Error(),
		Type:        ErrorTypeValidate,
		Recoverable: true,
	}
}
