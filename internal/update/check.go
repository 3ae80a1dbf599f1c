package update

import (
	"context"

	"github.com/handiism/installer-tracker/internal/model"
	"github.com/handiism/installer-tracker/internal/scrape"
)

// CheckResult is the outcome of resolving one title without downloading it.
type CheckResult struct {
	Title          string
	URL            string
	Version        string
	CurrentVersion string
	Err            error
}

// Changed reports whether a download would happen for this title.
func (r CheckResult) Changed() bool {
	return r.Err == nil && r.Version != r.CurrentVersion
}

// Check resolves every config and compares the detected version with state.
// Nothing is downloaded, archived or written to state.
func (m *Manager) Check(ctx context.Context, configs []model.SoftwareConfig, state model.State) []CheckResult {
	results := make([]CheckResult, 0, len(configs))
	for _, cfg := range configs {
		if ctx.Err() != nil {
			break
		}
		m.progress(ProgressEvent{Title: cfg.Title, Message: "Checking " + cfg.Title + "...", Level: LevelVerbose})

		result := CheckResult{Title: cfg.Title, CurrentVersion: state[cfg.Title].Version}
		candidate, err := m.resolve(ctx, cfg)
		if err == nil {
			result.Version, err = scrape.ExtractVersion(candidate)
		}
		if err == nil {
			result.URL, err = absoluteURL(candidate, cfg.DownloadPage)
		}
		result.Err = err
		results = append(results, result)
	}
	return results
}
