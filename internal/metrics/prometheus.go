package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
//
// A run is a short-lived process, so metrics are not scraped over HTTP. Instead
// WriteTextfile dumps the registry in the text exposition format for the
// node_exporter textfile collector.
type PrometheusRecorder struct {
	registry      *prom.Registry
	titleOutcomes *prom.CounterVec
	titleDuration prom.Histogram
	fetchRetries  prom.Counter
	runDuration   prom.Gauge
	lastRun       prom.Gauge
}

// NewPrometheusRecorder constructs and registers the run metrics on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		titleOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "installer_tracker",
			Name:      "title_results_total",
			Help:      "Processed titles by outcome",
		}, []string{"outcome"}),
		titleDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "installer_tracker",
			Name:      "title_duration_seconds",
			Help:      "Time spent resolving and downloading a single title",
			Buckets:   prom.ExponentialBuckets(0.25, 2, 10),
		}),
		fetchRetries: prom.NewCounter(prom.CounterOpts{
			Namespace: "installer_tracker",
			Name:      "fetch_failures_total",
			Help:      "Failed page fetch attempts",
		}),
		runDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: "installer_tracker",
			Name:      "run_duration_seconds",
			Help:      "Duration of the last run",
		}),
		lastRun: prom.NewGauge(prom.GaugeOpts{
			Namespace: "installer_tracker",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}
	reg.MustRegister(pr.titleOutcomes, pr.titleDuration, pr.fetchRetries, pr.runDuration, pr.lastRun)
	return pr
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.registry
}

func (p *PrometheusRecorder) IncTitleOutcome(outcome Outcome) {
	p.titleOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveTitleDuration(d time.Duration) {
	p.titleDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncFetchRetry() {
	p.fetchRetries.Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	p.runDuration.Set(d.Seconds())
	p.lastRun.SetToCurrentTime()
}

// WriteTextfile writes all registered metrics to path in the Prometheus text format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.registry)
}
