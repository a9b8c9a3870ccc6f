// Package notify contains docsync.Listener implementations that forward
// engine lifecycle events to logs and to a NATS subject.
package notify
