package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	rec := NewPrometheusRecorder(nil)

	rec.IncTitleOutcome(OutcomeUpdated)
	rec.IncTitleOutcome(OutcomeFailed)
	rec.IncTitleOutcome(OutcomeFailed)
	rec.IncFetchRetry()
	rec.ObserveTitleDuration(2 * time.Second)
	rec.ObserveRunDuration(5 * time.Second)

	path := filepath.Join(t.TempDir(), "installer_tracker.prom")
	require.NoError(t, rec.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	for _, want := range []string{
		`installer_tracker_title_results_total{outcome="updated"} 1`,
		`installer_tracker_title_results_total{outcome="failed"} 2`,
		`installer_tracker_fetch_failures_total 1`,
		`installer_tracker_run_duration_seconds 5`,
		`installer_tracker_title_duration_seconds_count 1`,
	} {
		assert.Contains(t, text, want)
	}
}

func TestPrometheusRecorder_SharedRegistry(t *testing.T) {
	rec := NewPrometheusRecorder(nil)
	families, err := rec.Registry().Gather()
	require.NoError(t, err)

	// Vectors without observations are not gathered.
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "installer_tracker_fetch_failures_total")
	assert.NotContains(t, names, "installer_tracker_title_results_total")
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncTitleOutcome(OutcomeUpdated)
	r.ObserveTitleDuration(time.Second)
	r.IncFetchRetry()
	r.ObserveRunDuration(time.Second)
}
