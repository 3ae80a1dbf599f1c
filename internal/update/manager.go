package update

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"sync/atomic"
	"time"

	ioutils "github.com/handiism/installer-tracker/internal/io"
	"github.com/handiism/installer-tracker/internal/metrics"
	"github.com/handiism/installer-tracker/internal/model"
	"github.com/handiism/installer-tracker/internal/scrape"
	"github.com/handiism/installer-tracker/internal/special"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a run progress update.
type ProgressEvent struct {
	Title   string // empty for run-level events
	Message string
	Level   ProgressLevel
	Err     error
}

// PageFetcher fetches a download page as text.
type PageFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Downloader stores the body of url at destPath.
type Downloader interface {
	DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error
}

// Archiver relocates superseded files. Archive must not block on the move;
// Wait returns once every scheduled move is done.
type Archiver interface {
	Archive(oldPath string)
	Wait()
}

// Summary counts the outcomes of a run.
type Summary struct {
	Total     int
	Updated   int
	Unchanged int
	Failed    int
	Skipped   int // not reached because the run was cancelled
	Duration  time.Duration
}

// Manager updates the tracked installers.
type Manager struct {
	downloadsPath string
	fetcher       PageFetcher
	downloader    Downloader
	resolvers     *special.Registry
	archiver      Archiver
	recorder      metrics.Recorder
	onProgress    func(ProgressEvent)

	processed     int32
	total         int32
	receivedBytes int64
}

// Option configures a Manager.
type Option func(*Manager)

// WithResolvers replaces the special-case registry (default: special.DefaultRegistry).
func WithResolvers(r *special.Registry) Option {
	return func(m *Manager) { m.resolvers = r }
}

// WithArchiver replaces the archiver (default: an ioutils.Archiver under downloadsPath).
func WithArchiver(a Archiver) Option {
	return func(m *Manager) { m.archiver = a }
}

// WithRecorder sets the metrics recorder (default: metrics.NoopRecorder).
func WithRecorder(r metrics.Recorder) Option {
	return func(m *Manager) { m.recorder = r }
}

// WithProgress sets the progress callback.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(m *Manager) { m.onProgress = fn }
}

// NewManager creates a Manager that stores installers in downloadsPath.
func NewManager(downloadsPath string, fetcher PageFetcher, downloader Downloader, opts ...Option) *Manager {
	m := &Manager{
		downloadsPath: downloadsPath,
		fetcher:       fetcher,
		downloader:    downloader,
		recorder:      metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.resolvers == nil {
		m.resolvers = special.DefaultRegistry(fetcher)
	}
	if m.archiver == nil {
		m.archiver = ioutils.NewArchiver(downloadsPath, func(path string, err error) {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Could not archive %s: %v", path, err), Level: LevelWarning, Err: err})
		})
	}
	return m
}

// Run processes configs in order and updates state in place.
//
// Each title is merged into state, resolved, compared with the stored version
// and downloaded when the version changed. A failing title records its error in
// state and never stops the run. Run returns after all pending archive moves
// have finished; the caller persists state afterwards.
func (m *Manager) Run(ctx context.Context, configs []model.SoftwareConfig, state model.State) Summary {
	start := time.Now()
	summary := Summary{Total: len(configs)}

	atomic.StoreInt32(&m.total, int32(len(configs)))
	atomic.StoreInt32(&m.processed, 0)
	atomic.StoreInt64(&m.receivedBytes, 0)

	for i, cfg := range configs {
		if ctx.Err() != nil {
			summary.Skipped = len(configs) - i
			m.progress(ProgressEvent{Message: fmt.Sprintf("Run cancelled, %d title(s) not processed", summary.Skipped), Level: LevelWarning, Err: ctx.Err()})
			break
		}

		download := model.Merge(state[cfg.Title], cfg)
		download.ErrorFlag = nil

		m.progress(ProgressEvent{Title: cfg.Title, Message: fmt.Sprintf("Processing %s...", cfg.Title), Level: LevelInfo})

		itemStart := time.Now()
		updated, err := m.process(ctx, cfg, &download)
		m.recorder.ObserveTitleDuration(time.Since(itemStart))

		switch {
		case err != nil:
			download.SetError(err)
			summary.Failed++
			m.recorder.IncTitleOutcome(metrics.OutcomeFailed)
			m.progress(ProgressEvent{Title: cfg.Title, Message: fmt.Sprintf("Error processing %s: %v", cfg.Title, err), Level: LevelError, Err: err})
		case updated:
			summary.Updated++
			m.recorder.IncTitleOutcome(metrics.OutcomeUpdated)
			m.progress(ProgressEvent{Title: cfg.Title, Message: fmt.Sprintf("Updated %s to %s", cfg.Title, download.Version), Level: LevelSuccess})
		default:
			summary.Unchanged++
			m.recorder.IncTitleOutcome(metrics.OutcomeUnchanged)
			m.progress(ProgressEvent{Title: cfg.Title, Message: fmt.Sprintf("%s is up to date (%s)", cfg.Title, download.Version), Level: LevelVerbose})
		}

		state[cfg.Title] = download
		atomic.AddInt32(&m.processed, 1)
	}

	m.archiver.Wait()

	summary.Duration = time.Since(start)
	m.recorder.ObserveRunDuration(summary.Duration)
	return summary
}

// process runs the pipeline for one title. It reports whether a new version was
// downloaded. download is only modified once every step has succeeded.
func (m *Manager) process(ctx context.Context, cfg model.SoftwareConfig, download *model.DownloadState) (bool, error) {
	candidate, err := m.resolve(ctx, cfg)
	if err != nil {
		return false, err
	}

	version, err := scrape.ExtractVersion(candidate)
	if err != nil {
		return false, err
	}
	if version == download.Version {
		return false, nil
	}

	downloadURL, err := absoluteURL(candidate, cfg.DownloadPage)
	if err != nil {
		return false, err
	}

	filename := ioutils.ResolveFilename(downloadURL, version, download.LocalPath)
	if err := ioutils.EnsureDir(m.downloadsPath); err != nil {
		return false, fmt.Errorf("create downloads directory: %w", err)
	}
	destPath := filepath.Join(m.downloadsPath, filename)

	m.progress(ProgressEvent{Title: cfg.Title, Message: fmt.Sprintf("Downloading %s at %s", filename, downloadURL), Level: LevelInfo})
	if err := m.downloader.DownloadFile(ctx, downloadURL, destPath, m.trackBytes()); err != nil {
		return false, err
	}

	m.archiver.Archive(download.LocalPath)

	download.LocalPath = destPath
	download.Version = version
	return true, nil
}

// resolve returns the candidate download URL for cfg, as found on the page.
func (m *Manager) resolve(ctx context.Context, cfg model.SoftwareConfig) (string, error) {
	if name, ok := m.resolvers.For(cfg); ok {
		return m.resolvers.Resolve(ctx, name, cfg)
	}

	html, err := m.fetcher.FetchText(ctx, cfg.DownloadPage)
	if err != nil {
		return "", err
	}
	return scrape.LocateDownloadPath(html, scrape.PatternsFor(cfg))
}

// absoluteURL resolves a reference without a scheme (for example a
// path-absolute "/files/a.exe") against the download page.
func absoluteURL(ref, page string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid download URL %q: %w", ref, err)
	}
	if u.IsAbs() {
		return ref, nil
	}
	if page == "" {
		return "", errors.New("relative download URL " + ref + " without a download page")
	}

	base, err := url.Parse(page)
	if err != nil {
		return "", fmt.Errorf("invalid download page %q: %w", page, err)
	}
	return base.ResolveReference(u).String(), nil
}

func (m *Manager) trackBytes() func(written, total int64) {
	var last int64
	return func(written, _ int64) {
		atomic.AddInt64(&m.receivedBytes, written-last)
		last = written
	}
}

// GetProgress returns current run progress.
func (m *Manager) GetProgress() (processed, total int32, receivedBytes int64) {
	return atomic.LoadInt32(&m.processed), atomic.LoadInt32(&m.total), atomic.LoadInt64(&m.receivedBytes)
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
