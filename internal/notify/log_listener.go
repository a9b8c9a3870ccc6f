package notify

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/docsync/internal/docsync"
	"git.home.luguber.info/inful/docsync/internal/logfields"
)

// LogListener writes one structured log line per event.
type LogListener struct {
	logger *slog.Logger
}

// NewLogListener returns a listener logging to logger, or to the default
// logger when nil.
func NewLogListener(logger *slog.Logger) *LogListener {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogListener{logger: logger}
}

func (l *LogListener) HandleEvent(ctx context.Context, ev docsync.Event) error {
	attrs := []any{slog.String("kind", string(ev.Kind))}
	if ev.SyncID != "" {
		attrs = append(attrs, logfields.SyncID(ev.SyncID))
	}
	if ev.Path != "" {
		attrs = append(attrs, logfields.File(ev.Path))
	}
	if ev.Dest != "" {
		attrs = append(attrs, logfields.Dest(ev.Dest))
	}

	switch ev.Kind {
	case docsync.EventError:
		l.logger.ErrorContext(ctx, "Sync event", append(attrs, slog.String(logfields.KeyError, ev.Error))...)
	case docsync.EventComplete:
		if r := ev.Result; r != nil {
			attrs = append(attrs,
				slog.Int("processed", r.FilesProcessed),
				slog.Int("errors", len(r.Errors)),
				logfields.DurationMS(r.DurationMS))
		}
		l.logger.InfoContext(ctx, "Sync event", attrs...)
	default:
		l.logger.DebugContext(ctx, "Sync event", attrs...)
	}
	return nil
}
