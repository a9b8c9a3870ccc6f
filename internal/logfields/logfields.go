package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySyncID     = "sync_id"
	KeyFile       = "file"
	KeyPath       = "path"
	KeyDest       = "dest"
	KeyDocType    = "doc_type"
	KeyPattern    = "pattern"
	KeyOp         = "op"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
	KeyURL        = "url"
	KeySubject    = "subject"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func SyncID(id string) slog.Attr { return slog.String(KeySyncID, id) }
func File(f string) slog.Attr { return slog.String(KeyFile, f) }
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }
func Dest(p string) slog.Attr { return slog.String(KeyDest, p) }
func DocType(t string) slog.Attr { return slog.String(KeyDocType, t) }
func Pattern(p string) slog.Attr { return slog.String(KeyPattern, p) }
func Op(op string) slog.Attr { return slog.String(KeyOp, op) }
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }
func DurationMS(ms int64) slog.Attr { return slog.Int64(KeyDurationMS, ms) }
func URL(u string) slog.Attr { return slog.String(KeyURL, u) }
func Subject(s string) slog.Attr { return slog.String(KeySubject, s) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
