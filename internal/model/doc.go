// Package model defines the core data structures used throughout
// installer-tracker.
//
// # SoftwareConfig
//
// SoftwareConfig is one entry of the user-authored software list. It names the
// title, its download page and optional regex overrides for link discovery:
//
//	cfg := model.SoftwareConfig{
//	    Title:        "Paratext",
//	    DownloadPage: "https://paratext.org/download/",
//	}
//
// # DownloadState
//
// DownloadState is the persisted record for a title. It embeds the title's
// SoftwareConfig and adds the local file path, the detected version and the last
// error message. State maps titles to their records.
//
// # Merging
//
// Merge builds the record for a new run from the previous record and the current
// configuration. Config fields always come from the configuration; state fields
// survive:
//
//	state[cfg.Title] = model.Merge(state[cfg.Title], cfg)
package model
