package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/google/uuid"
	"github.com/handiism/installer-tracker/internal/config"
	"github.com/handiism/installer-tracker/internal/http"
	"github.com/handiism/installer-tracker/internal/metrics"
	"github.com/handiism/installer-tracker/internal/model"
	"github.com/handiism/installer-tracker/internal/report"
	"github.com/handiism/installer-tracker/internal/update"
)

// Options configures a pass.
type Options struct {
	Settings *config.Settings

	// Progress receives every progress event, including fetch retries. May be nil.
	Progress func(update.ProgressEvent)

	// HTTPClient overrides the transport, mostly for tests.
	HTTPClient *stdhttp.Client

	// RunID identifies the pass in logs, metrics and the report. Generated when empty.
	RunID string

	// OnManager is called with the manager before processing starts, so callers
	// can poll its progress.
	OnManager func(*update.Manager)
}

// Result describes a completed pass.
type Result struct {
	RunID   string
	Summary update.Summary
	State   model.State
}

// Run executes one update pass.
func Run(ctx context.Context, opts Options) (*Result, error) {
	p, err := prepare(opts)
	if err != nil {
		return nil, err
	}

	if opts.OnManager != nil {
		opts.OnManager(p.manager)
	}

	p.emit(update.ProgressEvent{Message: fmt.Sprintf("Starting run %s with %d title(s)", p.runID, len(p.softwares)), Level: update.LevelVerbose})
	summary := p.manager.Run(ctx, p.softwares, p.state)

	s := p.settings
	if err := config.SaveState(s.StateFile, p.state); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}

	if p.prom != nil {
		if err := p.prom.WriteTextfile(s.MetricsFile); err != nil {
			return nil, fmt.Errorf("write metrics: %w", err)
		}
	}

	if s.ReportFile != "" {
		meta := report.Meta{RunID: p.runID, GeneratedAt: time.Now()}
		if err := report.Generate(s.ReportFile, p.softwares, p.state, meta); err != nil {
			return nil, err
		}
	}

	return &Result{RunID: p.runID, Summary: summary, State: p.state}, nil
}

// Check resolves every title and reports available versions without downloading
// or saving anything.
func Check(ctx context.Context, opts Options) ([]update.CheckResult, error) {
	p, err := prepare(opts)
	if err != nil {
		return nil, err
	}
	return p.manager.Check(ctx, p.softwares, p.state), nil
}

type pass struct {
	runID     string
	settings  *config.Settings
	softwares []model.SoftwareConfig
	state     model.State
	manager   *update.Manager
	prom      *metrics.PrometheusRecorder
	emit      func(update.ProgressEvent)
}

func prepare(opts Options) (*pass, error) {
	s := opts.Settings
	if s == nil {
		s = config.DefaultSettings()
	}

	softwares, err := config.LoadSoftwares(s.SoftwaresFile)
	if err != nil {
		return nil, err
	}
	state, err := config.LoadState(s.StateFile)
	if err != nil {
		return nil, err
	}

	p := &pass{runID: opts.RunID, settings: s, softwares: softwares, state: state}
	if p.runID == "" {
		p.runID = uuid.NewString()
	}
	p.emit = func(event update.ProgressEvent) {
		if opts.Progress != nil {
			opts.Progress(event)
		}
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	if s.MetricsFile != "" {
		p.prom = metrics.NewPrometheusRecorder(nil)
		recorder = p.prom
	}

	client := http.NewClient(
		http.WithHTTPClient(opts.HTTPClient),
		http.WithUserAgent(s.UserAgent),
		http.WithTimeout(s.RequestTimeout()),
	)
	fetcher := http.NewFetcher(client, s.FetchAttempts, func(ev http.RetryEvent) {
		recorder.IncFetchRetry()
		if ev.Final() {
			return
		}
		p.emit(update.ProgressEvent{Message: ev.Err.Error(), Level: update.LevelVerbose, Err: ev.Err})
		p.emit(update.ProgressEvent{Message: fmt.Sprintf("Try #%d of %d...", ev.Attempt+1, ev.MaxAttempts), Level: update.LevelWarning})
	})

	p.manager = update.NewManager(s.DownloadsPath, fetcher, client,
		update.WithRecorder(recorder),
		update.WithProgress(p.emit),
	)
	return p, nil
}
