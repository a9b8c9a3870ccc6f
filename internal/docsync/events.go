package docsync

import (
	"context"
	"time"
)

// EventKind names a lifecycle notification.
type EventKind string

const (
	EventComplete    EventKind = "complete"
	EventError       EventKind = "error"
	EventFileSynced  EventKind = "file_synced"
	EventFileRemoved EventKind = "file_removed"
)

// Event is delivered to every registered Listener.
type Event struct {
	ID     string      `json:"id"`
	Kind   EventKind   `json:"kind"`
	SyncID string      `json:"sync_id,omitempty"`
	Time   time.Time   `json:"time"`
	Path   string      `json:"path,omitempty"`
	Dest   string      `json:"dest,omitempty"`
	Result *SyncResult `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Listener receives lifecycle notifications. Returned errors are logged and
// never change the outcome of the operation that emitted the event.
type Listener interface {
	HandleEvent(ctx context.Context, ev Event) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, ev Event) error

func (f ListenerFunc) HandleEvent(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}
