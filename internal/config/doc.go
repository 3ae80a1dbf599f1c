// Package config provides configuration and persistence for installer-tracker.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Loading the software list (JSON, YAML or TOML)
//   - Loading and saving the per-title download state
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// softwares.json -> downloads.json, installers in public/downloads
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/settings.json")
//	if err != nil {
//	    // Uses defaults only if the file doesn't exist
//	}
//
// # Software List and State
//
//	softwares, err := config.LoadSoftwares(settings.SoftwaresFile)
//	state, err := config.LoadState(settings.StateFile)
//	// ... run ...
//	err = config.SaveState(settings.StateFile, state)
//
// Failures here are fatal for a run; item-level failures are recorded in the
// state instead.
package config
