package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/installer-tracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeFile(t, "settings.json", `{"downloads_path": "/srv/dl", "fetch_attempts": 5}`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/dl", s.DownloadsPath)
	assert.Equal(t, 5, s.FetchAttempts)
	assert.Equal(t, "downloads.json", s.StateFile, "unset keys keep defaults")
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.json")
	s := DefaultSettings()
	s.MetricsFile = "/var/lib/node_exporter/installer_tracker.prom"
	require.NoError(t, s.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
	assert.Equal(t, "1m0s", loaded.RequestTimeout().String())
}

func TestLoadSoftwares_Formats(t *testing.T) {
	want := []model.SoftwareConfig{
		{Title: "Paratext", DownloadPage: "https://paratext.org/download/", DownloadPathPattern: `href="([^"]+\.msi)"`},
		{Title: "FLEx", DownloadPage: "https://software.sil.org/fieldworks/download/"},
	}

	files := map[string]string{
		"softwares.json": `[
			{"title": "Paratext", "downloadPage": "https://paratext.org/download/", "downloadPathPattern": "href=\"([^\"]+\\.msi)\""},
			{"title": "FLEx", "downloadPage": "https://software.sil.org/fieldworks/download/"}
		]`,
		"softwares.yaml": `
- title: Paratext
  downloadPage: https://paratext.org/download/
  downloadPathPattern: 'href="([^"]+\.msi)"'
- title: FLEx
  downloadPage: https://software.sil.org/fieldworks/download/
`,
		"softwares.toml": `
[[software]]
title = "Paratext"
downloadPage = "https://paratext.org/download/"
downloadPathPattern = 'href="([^"]+\.msi)"'

[[software]]
title = "FLEx"
downloadPage = "https://software.sil.org/fieldworks/download/"
`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			got, err := LoadSoftwares(writeFile(t, name, content))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseSoftwares_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{name: "duplicate title", data: `[{"title":"A","downloadPage":"x"},{"title":"A","downloadPage":"y"}]`, ext: ".json"},
		{name: "missing title", data: `[{"downloadPage":"x"}]`, ext: ".json"},
		{name: "missing page", data: `[{"title":"A"}]`, ext: ".json"},
		{name: "unsupported format", data: `title=A`, ext: ".ini"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSoftwares([]byte(tt.data), tt.ext)
			assert.True(t, errors.Is(err, ErrInvalidSoftwareList), "got %v", err)
		})
	}
}

func TestParseSoftwares_ResolverWithoutPage(t *testing.T) {
	got, err := ParseSoftwares([]byte(`[{"title":"FieldWorks","resolver":"FLEx"}]`), ".json")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "FLEx", got[0].Resolver)
}

func TestParseSoftwares_MalformedJSON(t *testing.T) {
	_, err := ParseSoftwares([]byte(`[{"title":`), ".json")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidSoftwareList))
}

func TestState_LoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "downloads.json")

	empty, err := LoadState(path)
	require.NoError(t, err)
	assert.Empty(t, empty)

	flag := "no matching download path found on download page"
	state := model.State{
		"App": {
			SoftwareConfig: model.SoftwareConfig{Title: "App", DownloadPage: "https://x/"},
			LocalPath:      "public/downloads/app-1.0.exe",
			Version:        "1.0",
		},
		"Broken": {
			SoftwareConfig: model.SoftwareConfig{Title: "Broken", DownloadPage: "https://y/"},
			ErrorFlag:      &flag,
		},
	}
	require.NoError(t, SaveState(path, state))

	loaded, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestLoadState_Malformed(t *testing.T) {
	_, err := LoadState(writeFile(t, "downloads.json", `{"App": [}`))
	require.Error(t, err)
}
