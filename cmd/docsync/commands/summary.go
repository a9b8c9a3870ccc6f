package commands

import (
	"fmt"
	"io"

	"git.home.luguber.info/inful/docsync/internal/docsync"
)

// printSummary writes a human-readable report of a sync pass.
func printSummary(w io.Writer, r *docsync.SyncResult) {
	if r == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "Sync complete in %dms\n", r.DurationMS)
	_, _ = fmt.Fprintf(w, "  processed: %d\n", r.FilesProcessed)
	printPaths(w, "added", r.FilesAdded)
	printPaths(w, "updated", r.FilesUpdated)
	printPaths(w, "removed", r.FilesRemoved)
	printErrors(w, r.Errors)
}

func printPaths(w io.Writer, label string, paths []string) {
	_, _ = fmt.Fprintf(w, "  %s: %d\n", label, len(paths))
	for _, p := range paths {
		_, _ = fmt.Fprintf(w, "    %s\n", p)
	}
}

func printErrors(w io.Writer, errs []docsync.SyncError) {
	_, _ = fmt.Fprintf(w, "  errors: %d\n", len(errs))
	for _, e := range errs {
		file := e.File
		if file == "" {
			file = "(cleanup)"
		}
		_, _ = fmt.Fprintf(w, "    %s [%s]: %s\n", file, e.Type, e.Error)
	}
}
