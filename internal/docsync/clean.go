package docsync

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsync/internal/docmodel"
	"git.home.luguber.info/inful/docsync/internal/logfields"
)

// documentExtensions are the destination files cleanup considers.
var documentExtensions = map[string]struct{}{
	".md":  {},
	".mdx": {},
}

// Clean removes generated files that no longer have a discoverable source
// and returns their paths. Only files directly inside the managed output
// subdirectories are considered.
func (s *Service) Clean(ctx context.Context) ([]string, error) {
	b, err := s.begin("clean", StateSyncing)
	if err != nil {
		return nil, err
	}
	defer s.finish()

	sources, err := s.discover(b)
	if err != nil {
		return nil, err
	}
	return s.cleanOrphans(ctx, b, uuid.NewString(), sources)
}

// expectedDestinations maps every classifiable source to its destination.
func expectedDestinations(b *binding, sources []string) map[string]struct{} {
	expected := make(map[string]struct{}, len(sources))
	for _, source := range sources {
		typ, err := b.classify(source)
		if err != nil {
			continue
		}
		dest, err := b.mapper.MapPath(source, typ, b.outputDir)
		if err != nil {
			continue
		}
		expected[filepath.Clean(dest)] = struct{}{}
	}
	return expected
}

func (s *Service) cleanOrphans(ctx context.Context, b *binding, syncID string, sources []string) ([]string, error) {
	expected := expectedDestinations(b, sources)
	removed := []string{}
	var errs []error

	for _, subdir := range docmodel.ManagedSubdirs(b.cfg.SourcePatterns) {
		dir := filepath.Join(b.outputDir, subdir)
		names, err := s.files.ListFiles(dir)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, name := range names {
			if _, ok := documentExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
				continue
			}
			path := filepath.Join(dir, name)
			if _, ok := expected[path]; ok {
				continue
			}
			if err := s.files.DeleteFile(path); err != nil {
				errs = append(errs, err)
				continue
			}
			removed = append(removed, path)
			s.logger.Info("Removed orphaned file", logfields.Path(path), logfields.SyncID(syncID))
			s.emit(ctx, Event{Kind: EventFileRemoved, SyncID: syncID, Dest: path})
		}
	}

	s.recorder.AddFilesRemoved(len(removed))
	return removed, errors.Join(errs...)
}
