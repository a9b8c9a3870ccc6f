// Package errors provides the classified error primitives used across docsync.
//
// Errors carry a category (config, discovery, parse, validation, filesystem,
// watch, state, internal), a severity and structured context. The sync
// engine maps categories onto SyncError types, and the CLI adapter maps them
// onto process exit codes.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "write failed").
//		WithContext("path", dest).
//		Build()
package errors
