// Package discovery expands typed glob patterns into source documentation
// files and classifies paths against the same pattern table.
package discovery

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"git.home.luguber.info/inful/docsync/internal/docmodel"
	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
	"git.home.luguber.info/inful/docsync/internal/logfields"
)

// Discovery resolves patterns relative to a project root.
type Discovery struct {
	fs     afero.Fs
	root   string
	logger *slog.Logger
}

// Option configures a Discovery.
type Option func(*Discovery)

// WithFs replaces the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(d *Discovery) { d.fs = fsys }
}

// WithLogger sets the logger used for skipped patterns.
func WithLogger(l *slog.Logger) Option {
	return func(d *Discovery) { d.logger = l }
}

// New creates a Discovery rooted at root.
func New(root string, opts ...Option) *Discovery {
	d := &Discovery{fs: afero.NewOsFs(), root: root, logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the project root patterns are resolved against.
func (d *Discovery) Root() string {
	return d.root
}

// DiscoverFiles expands every pattern into absolute file paths, in pattern
// order. Files whose name starts with "readme" (any case) are skipped.
//
// A pattern that fails to expand is logged and contributes nothing; the
// remaining patterns are still expanded. Files matched by several patterns
// appear once per matching pattern.
func (d *Discovery) DiscoverFiles(patterns []docmodel.PathPattern) []string {
	var files []string
	for _, p := range patterns {
		matches, err := d.Expand(p.Pattern)
		if err != nil {
			d.logger.Warn("Skipping source pattern",
				logfields.Pattern(p.Pattern),
				logfields.DocType(string(p.Type)),
				logfields.Error(err))
			continue
		}
		for _, m := range matches {
			if isReadme(m) {
				continue
			}
			files = append(files, m)
		}
	}
	d.logger.Debug("Discovered source files", logfields.Count(len(files)))
	return files
}

// Expand resolves a single glob against the project root and returns the
// matching regular files as sorted absolute paths.
func (d *Discovery) Expand(pattern string) ([]string, error) {
	full := pattern
	if !filepath.IsAbs(full) {
		full = filepath.Join(d.root, pattern)
	}
	base, rel := doublestar.SplitPattern(filepath.ToSlash(full))
	if !doublestar.ValidatePattern(rel) {
		return nil, ferrors.NewError(ferrors.CategoryDiscovery, "invalid glob pattern").
			WithContext("pattern", pattern).
			WithCause(doublestar.ErrBadPattern).
			Build()
	}

	baseDir := filepath.FromSlash(base)
	fsys := afero.NewIOFS(afero.NewBasePathFs(d.fs, baseDir))
	matches, err := doublestar.Glob(fsys, rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryDiscovery, "glob expansion failed").
			WithContext("pattern", pattern).
			Build()
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, filepath.Join(baseDir, filepath.FromSlash(m)))
	}
	sort.Strings(out)
	return out, nil
}

func isReadme(path string) bool {
	return strings.HasPrefix(strings.ToLower(filepath.Base(path)), "readme")
}

// ExtractName returns the canonical item name of path. Container types
// (command, service, assistant) are named after their directory; every other
// type uses the file name without extension.
func ExtractName(path string, typ docmodel.DocumentationType) string {
	if typ.IsContainer() {
		return filepath.Base(filepath.Dir(path))
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
