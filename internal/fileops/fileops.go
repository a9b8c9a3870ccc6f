// Package fileops provides the file primitives used by the sync engine:
// text read/write/delete, modification times and change-detection checksums.
// It carries no policy.
package fileops

import (
	"errors"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/natefinch/atomic"
	"github.com/spf13/afero"

	ferrors "git.home.luguber.info/inful/docsync/internal/foundation/errors"
)

const (
	filePerms = 0o644
	dirPerms  = 0o755
)

// Operations performs file I/O against an afero filesystem.
type Operations struct {
	fs           afero.Fs
	atomicWrites bool
}

// New returns Operations backed by the OS filesystem. Writes go through a
// temp file and rename so readers never observe a half-written document.
func New() *Operations {
	return &Operations{fs: afero.NewOsFs(), atomicWrites: true}
}

// NewWithFs returns Operations backed by fsys (plain writes).
func NewWithFs(fsys afero.Fs) *Operations {
	return &Operations{fs: fsys}
}

// Fs exposes the underlying filesystem.
func (o *Operations) Fs() afero.Fs {
	return o.fs
}

// ReadFile reads path as UTF-8 text.
func (o *Operations) ReadFile(path string) (string, error) {
	data, err := afero.ReadFile(o.fs, path)
	if err != nil {
		return "", wrap(err, "failed to read file", path)
	}
	return string(data), nil
}

// WriteFile writes content to path, replacing any existing file.
func (o *Operations) WriteFile(path, content string) error {
	if o.atomicWrites {
		if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
			return wrap(err, "failed to write file", path)
		}
		// atomic.WriteFile leaves new files with temp-file permissions.
		if err := o.fs.Chmod(path, filePerms); err != nil {
			return wrap(err, "failed to set file permissions", path)
		}
		return nil
	}
	if err := afero.WriteFile(o.fs, path, []byte(content), filePerms); err != nil {
		return wrap(err, "failed to write file", path)
	}
	return nil
}

// DeleteFile removes path. A missing file is not an error.
func (o *Operations) DeleteFile(path string) error {
	if err := o.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return wrap(err, "failed to delete file", path)
	}
	return nil
}

// ModificationTime returns the filesystem modification time of path.
func (o *Operations) ModificationTime(path string) (time.Time, error) {
	info, err := o.fs.Stat(path)
	if err != nil {
		return time.Time{}, wrap(err, "failed to stat file", path)
	}
	return info.ModTime(), nil
}

// EnsureDirectory creates path and any missing parents. An existing
// directory is success.
func (o *Operations) EnsureDirectory(path string) error {
	if err := o.fs.MkdirAll(path, dirPerms); err != nil && !errors.Is(err, fs.ErrExist) {
		return wrap(err, "failed to create directory", path)
	}
	return nil
}

// Exists reports whether path exists.
func (o *Operations) Exists(path string) (bool, error) {
	ok, err := afero.Exists(o.fs, path)
	if err != nil {
		return false, wrap(err, "failed to stat file", path)
	}
	return ok, nil
}

// ListFiles returns the regular files directly inside dir, sorted by name.
// A missing directory yields no files.
func (o *Operations) ListFiles(dir string) ([]string, error) {
	entries, err := afero.ReadDir(o.fs, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, wrap(err, "failed to list directory", dir)
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Mode().IsRegular() {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// Checksum returns a fast, non-cryptographic hash of content for change
// detection.
func Checksum(content string) string {
	return strconv.FormatUint(xxhash.Sum64String(content), 16)
}

func wrap(err error, msg, path string) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, msg+" "+path).
		WithContext("path", path).
		Build()
}
