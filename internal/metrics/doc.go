// Package metrics records run metrics for installer-tracker.
//
// The update manager reports through the Recorder interface. NoopRecorder is the
// default; PrometheusRecorder collects counters and writes them to a textfile for
// the node_exporter textfile collector once the run is done:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	// ... run with rec ...
//	err := rec.WriteTextfile("/var/lib/node_exporter/installer_tracker.prom")
package metrics
