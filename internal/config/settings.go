package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Settings holds all configuration options.
type Settings struct {
	// Files
	SoftwaresFile string `json:"softwares_file"`
	StateFile     string `json:"state_file"`
	DownloadsPath string `json:"downloads_path"`
	ReportFile    string `json:"report_file"`
	MetricsFile   string `json:"metrics_file"` // empty disables metrics output

	// HTTP settings
	UserAgent             string `json:"user_agent"`
	RequestTimeoutSeconds int    `json:"request_timeout_seconds"`
	FetchAttempts         int    `json:"fetch_attempts"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		SoftwaresFile: "softwares.json",
		StateFile:     "downloads.json",
		DownloadsPath: filepath.Join("public", "downloads"),
		ReportFile:    filepath.Join("public", "index.html"),

		UserAgent:             "installer-tracker",
		RequestTimeoutSeconds: 60,
		FetchAttempts:         3,
	}
}

// Load reads settings from a JSON file. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// RequestTimeout returns the per-request HTTP timeout.
func (s *Settings) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}
