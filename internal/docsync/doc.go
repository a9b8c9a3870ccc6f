// Package docsync keeps a generated documentation tree in sync with source
// documentation fragments that live beside code.
//
// A Service is configured once through Initialize and then runs one-shot
// passes (Sync), continuous watching (Watch), orphan cleanup (Clean) or
// read-only validation (Validate). Every per-file failure is recoverable and
// recorded in the pass result; only initialization and discovery failures
// stop an operation.
//
// A Service performs one operation at a time. Starting an operation while
// another is running on the same instance returns a state error.
package docsync
