package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsync"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	syncDuration prom.Histogram
	syncOutcomes *prom.CounterVec
	fileOutcomes *prom.CounterVec
	filesRemoved prom.Counter
	watchEvents  *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		syncDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "sync_duration_seconds",
			Help:      "Duration of complete sync passes",
			Buckets:   prom.DefBuckets,
		}),
		syncOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sync_passes_total",
			Help:      "Sync passes by outcome",
		}, []string{"outcome"}),
		fileOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_total",
			Help:      "Processed source files by outcome",
		}, []string{"outcome"}),
		filesRemoved: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "files_removed_total",
			Help:      "Generated files removed by cleanup or watch deletions",
		}),
		watchEvents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "watch_events_total",
			Help:      "Filesystem events handled in watch mode",
		}, []string{"op"}),
	}
	reg.MustRegister(pr.syncDuration, pr.syncOutcomes, pr.fileOutcomes, pr.filesRemoved, pr.watchEvents)
	return pr
}

func (p *PrometheusRecorder) ObserveSyncDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.syncDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncSyncOutcome(outcome SyncOutcome) {
	if p == nil {
		return
	}
	p.syncOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncFileOutcome(outcome FileOutcome) {
	if p == nil {
		return
	}
	p.fileOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddFilesRemoved(n int) {
	if p == nil || n <= 0 {
		return
	}
	p.filesRemoved.Add(float64(n))
}

func (p *PrometheusRecorder) IncWatchEvent(op string) {
	if p == nil {
		return
	}
	p.watchEvents.WithLabelValues(op).Inc()
}
