package metrics

import "time"

// FileOutcome labels the result of processing one source file.
type FileOutcome string

const (
	FileAdded     FileOutcome = "added"
	FileUpdated   FileOutcome = "updated"
	FileUnchanged FileOutcome = "unchanged"
	FileFailed    FileOutcome = "failed"
)

// SyncOutcome labels a completed sync pass.
type SyncOutcome string

const (
	SyncSuccess    SyncOutcome = "success"     // no per-file errors
	SyncWithErrors SyncOutcome = "with_errors" // completed, some files failed
	SyncFailed     SyncOutcome = "failed"      // discovery or setup aborted the pass
)

// Recorder defines observability hooks for sync passes and watch events.
type Recorder interface {
	ObserveSyncDuration(d time.Duration)
	IncSyncOutcome(outcome SyncOutcome)
	IncFileOutcome(outcome FileOutcome)
	AddFilesRemoved(n int)
	IncWatchEvent(op string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveSyncDuration(time.Duration) {}
func (NoopRecorder) IncSyncOutcome(SyncOutcome)        {}
func (NoopRecorder) IncFileOutcome(FileOutcome)        {}
func (NoopRecorder) AddFilesRemoved(int)               {}
func (NoopRecorder) IncWatchEvent(string)              {}
