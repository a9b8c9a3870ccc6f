// Package metrics provides the observability hooks of the sync engine.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so metrics collection never needs nil checks:
//
//	svc := docsync.New(docsync.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// PrometheusRecorder registers its collectors on the given registry, and
// Server exposes that registry over HTTP for long-running watch and
// schedule modes.
package metrics
