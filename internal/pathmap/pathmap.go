// Package pathmap computes where a source document is written in the
// generated documentation tree.
package pathmap

import (
	"path/filepath"

	"git.home.luguber.info/inful/docsync/internal/discovery"
	"git.home.luguber.info/inful/docsync/internal/docmodel"
	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
)

// DirectoryEnsurer creates a directory tree, treating an existing directory
// as success.
type DirectoryEnsurer interface {
	EnsureDirectory(path string) error
}

// Mapper maps sources to destinations using the same pattern table that
// drives discovery.
type Mapper struct {
	subdirs map[docmodel.DocumentationType]string
	dirs    DirectoryEnsurer
}

// New builds a Mapper from patterns. When a type appears in several
// patterns, the first pattern's subdirectory is used.
func New(patterns []docmodel.PathPattern, dirs DirectoryEnsurer) *Mapper {
	subdirs := make(map[docmodel.DocumentationType]string, len(patterns))
	for _, p := range patterns {
		if _, ok := subdirs[p.Type]; !ok {
			subdirs[p.Type] = p.OutputSubdir
		}
	}
	return &Mapper{subdirs: subdirs, dirs: dirs}
}

// OutputSubdir returns the managed subdirectory registered for typ.
func (m *Mapper) OutputSubdir(typ docmodel.DocumentationType) (string, error) {
	subdir, ok := m.subdirs[typ]
	if !ok {
		return "", ferrors.ConfigError("no source pattern registered for documentation type").
			WithContext("type", string(typ)).
			Build()
	}
	return subdir, nil
}

// MapPath returns outputDir/<subdir>/<name><ext> for sourcePath. The source
// extension is always kept.
func (m *Mapper) MapPath(sourcePath string, typ docmodel.DocumentationType, outputDir string) (string, error) {
	subdir, err := m.OutputSubdir(typ)
	if err != nil {
		return "", err
	}
	name := discovery.ExtractName(sourcePath, typ)
	return filepath.Join(outputDir, subdir, name+filepath.Ext(sourcePath)), nil
}

// EnsureDirectory creates path recursively.
func (m *Mapper) EnsureDirectory(path string) error {
	return m.dirs.EnsureDirectory(path)
}
