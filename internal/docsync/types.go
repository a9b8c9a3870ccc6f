package docsync

import (
	"time"

	"git.home.luguber.info/inful/docsync/internal/docmodel"
	"git.home.luguber.info/inful/docsync/internal/frontmatter"
)

// State is the engine lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateInitialized
	StateSyncing
	StateWatching
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateSyncing:
		return "syncing"
	case StateWatching:
		return "watching"
	default:
		return "unknown"
	}
}

// Config is the synchronization configuration supplied to Initialize.
type Config struct {
	SourcePatterns []docmodel.PathPattern
	OutputDir      string
	Watch          bool
	Clean          bool
	Validate       bool
	// PreserveExtensions documents intent only; source extensions are
	// always kept.
	PreserveExtensions bool
}

// ErrorType classifies a per-file failure.
type ErrorType string

const (
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypeValidate ErrorType = "validate"
	ErrorTypeWrite    ErrorType = "write"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// SyncError records a failure isolated to one file.
type SyncError struct {
	File        string    `json:"file"`
	Error       string    `json:"error"`
	Type        ErrorType `json:"type"`
	Recoverable bool      `json:"recoverable"`
}

// SyncResult summarizes one completed pass. Added, updated and removed
// entries are destination paths.
type SyncResult struct {
	SyncID         string      `json:"sync_id"`
	FilesProcessed int         `json:"files_processed"`
	FilesAdded     []string    `json:"files_added"`
	FilesUpdated   []string    `json:"files_updated"`
	FilesRemoved   []string    `json:"files_removed"`
	Errors         []SyncError `json:"errors"`
	DurationMS     int64       `json:"duration_ms"`
}

func newSyncResult(syncID string) *SyncResult {
	return &SyncResult{
		SyncID:       syncID,
		FilesAdded:   []string{},
		FilesUpdated: []string{},
		FilesRemoved: []string{},
		Errors:       []SyncError{},
	}
}

// HasErrors reports whether any file failed.
func (r *SyncResult) HasErrors() bool {
	return r != nil && len(r.Errors) > 0
}

// DocumentationFile is the per-pass record of one processed source. It is
// rebuilt on every pass and never persisted.
type DocumentationFile struct {
	SourcePath   string
	DestPath     string
	Type         docmodel.DocumentationType
	Name         string
	Frontmatter  *frontmatter.Data
	Content      string
	LastModified time.Time
	Checksum     string
}
