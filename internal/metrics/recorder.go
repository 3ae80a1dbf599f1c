package metrics

import "time"

// Outcome enumerates per-title processing results.
type Outcome string

const (
	OutcomeUpdated   Outcome = "updated"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeFailed    Outcome = "failed"
)

// Recorder defines observability hooks for a run. Implementations may forward to
// Prometheus or anything else; NoopRecorder is used when metrics are not configured.
type Recorder interface {
	IncTitleOutcome(outcome Outcome)
	ObserveTitleDuration(d time.Duration)
	IncFetchRetry()
	ObserveRunDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncTitleOutcome(Outcome)            {}
func (NoopRecorder) ObserveTitleDuration(time.Duration) {}
func (NoopRecorder) IncFetchRetry()                     {}
func (NoopRecorder) ObserveRunDuration(time.Duration)   {}
