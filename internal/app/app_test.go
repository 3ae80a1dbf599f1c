package app

import (
	"context"
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/handiism/installer-tracker/internal/config"
	"github.com/handiism/installer-tracker/internal/update"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	server     *httptest.Server
	settings   *config.Settings
	brokenHits atomic.Int32
	installerV atomic.Value
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{}
	f.installerV.Store("1.2")

	mux := stdhttp.NewServeMux()
	mux.HandleFunc("/dl/", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		fmt.Fprintf(w, `<html><a href="/files/tool-%s.exe">Download</a></html>`, f.installerV.Load())
	})
	mux.HandleFunc("/files/", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		fmt.Fprint(w, "binary "+r.URL.Path)
	})
	mux.HandleFunc("/broken/", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		f.brokenHits.Add(1)
		w.WriteHeader(stdhttp.StatusInternalServerError)
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	dir := t.TempDir()
	softwares := []map[string]string{
		{"title": "Tool", "downloadPage": f.server.URL + "/dl/"},
		{"title": "Broken", "downloadPage": f.server.URL + "/broken/"},
	}
	data, err := json.Marshal(softwares)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "softwares.json"), data, 0644))

	s := config.DefaultSettings()
	s.SoftwaresFile = filepath.Join(dir, "softwares.json")
	s.StateFile = filepath.Join(dir, "downloads.json")
	s.DownloadsPath = filepath.Join(dir, "public", "downloads")
	s.ReportFile = filepath.Join(dir, "public", "index.html")
	s.MetricsFile = filepath.Join(dir, "installer_tracker.prom")
	f.settings = s
	return f
}

func TestRun(t *testing.T) {
	f := newFixture(t)

	var messages []string
	result, err := Run(context.Background(), Options{
		Settings: f.settings,
		RunID:    "test-run",
		Progress: func(ev update.ProgressEvent) { messages = append(messages, ev.Message) },
	})
	require.NoError(t, err)

	assert.Equal(t, "test-run", result.RunID)
	assert.Equal(t, 1, result.Summary.Updated)
	assert.Equal(t, 1, result.Summary.Failed)
	assert.EqualValues(t, 3, f.brokenHits.Load(), "page fetches are tried three times")
	assert.Contains(t, messages, "Try #2 of 3...")
	assert.Contains(t, messages, "Try #3 of 3...")
	assert.NotContains(t, messages, "Try #4 of 3...")

	path := filepath.Join(f.settings.DownloadsPath, "tool-1.2.exe")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "binary /files/tool-1.2.exe", string(content))

	state, err := config.LoadState(f.settings.StateFile)
	require.NoError(t, err)
	assert.Equal(t, "1.2", state["Tool"].Version)
	assert.Equal(t, path, state["Tool"].LocalPath)
	require.NotNil(t, state["Broken"].ErrorFlag)
	assert.Contains(t, *state["Broken"].ErrorFlag, "HTTP 500")

	page, err := os.ReadFile(f.settings.ReportFile)
	require.NoError(t, err)
	assert.Contains(t, string(page), `href="downloads/tool-1.2.exe"`)
	assert.Contains(t, string(page), "test-run")

	prom, err := os.ReadFile(f.settings.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `installer_tracker_title_results_total{outcome="updated"} 1`)
	assert.Contains(t, string(prom), `installer_tracker_title_results_total{outcome="failed"} 1`)
	assert.Contains(t, string(prom), "installer_tracker_fetch_failures_total 3")
}

func TestRun_NewVersionArchivesPrevious(t *testing.T) {
	f := newFixture(t)

	_, err := Run(context.Background(), Options{Settings: f.settings})
	require.NoError(t, err)

	f.installerV.Store("1.3")
	result, err := Run(context.Background(), Options{Settings: f.settings})
	require.NoError(t, err)

	assert.Equal(t, "1.3", result.State["Tool"].Version)
	assert.FileExists(t, filepath.Join(f.settings.DownloadsPath, "tool-1.3.exe"))
	assert.FileExists(t, filepath.Join(f.settings.DownloadsPath, "old", "tool-1.2.exe"))
	assert.NoFileExists(t, filepath.Join(f.settings.DownloadsPath, "tool-1.2.exe"))
}

func TestRun_MalformedStateIsFatal(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.settings.StateFile, []byte("{not json"), 0644))

	_, err := Run(context.Background(), Options{Settings: f.settings})
	require.Error(t, err)
	assert.NoFileExists(t, f.settings.ReportFile)
}

func TestRun_MissingSoftwareListIsFatal(t *testing.T) {
	f := newFixture(t)
	f.settings.SoftwaresFile = filepath.Join(t.TempDir(), "missing.json")

	_, err := Run(context.Background(), Options{Settings: f.settings})
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	f := newFixture(t)

	results, err := Check(context.Background(), Options{Settings: f.settings})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Tool", results[0].Title)
	assert.True(t, results[0].Changed())
	assert.Equal(t, f.server.URL+"/files/tool-1.2.exe", results[0].URL)
	assert.Error(t, results[1].Err)

	assert.NoFileExists(t, f.settings.StateFile)
	assert.NoDirExists(t, f.settings.DownloadsPath)
}
