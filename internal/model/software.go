package model

// SoftwareConfig is one user-authored entry of the tracked software list.
//
// SoftwareConfig is read once per run and never modified. Title is the unique key
// that links the entry to its DownloadState.
//
// Example (softwares.json):
//
//	[
//	  {
//	    "title": "Paratext",
//	    "downloadPage": "https://paratext.org/download/",
//	    "downloadPathPattern": "href=\"([^\"]+Paratext[^\"]+\\.msi)\""
//	  },
//	  {"title": "FLEx", "downloadPage": "https://software.sil.org/fieldworks/download/"}
//	]
type SoftwareConfig struct {
	// Title identifies the software in configuration, state and the report.
	Title string `json:"title" yaml:"title" toml:"title"`

	// DownloadPage is the vendor page believed to link to the current installer.
	DownloadPage string `json:"downloadPage" yaml:"downloadPage" toml:"downloadPage"`

	// DownloadLinkPattern overrides the regex used to find candidate tags.
	// Empty means any anchor-opening tag.
	DownloadLinkPattern string `json:"downloadLinkPattern,omitempty" yaml:"downloadLinkPattern,omitempty" toml:"downloadLinkPattern,omitempty"`

	// DownloadPathPattern overrides the regex tested against each candidate tag.
	// Capture group 1 is the download path. Empty means an href ending in msi or exe.
	DownloadPathPattern string `json:"downloadPathPattern,omitempty" yaml:"downloadPathPattern,omitempty" toml:"downloadPathPattern,omitempty"`

	// Resolver names a registered special-case strategy. Empty routes by Title.
	Resolver string `json:"resolver,omitempty" yaml:"resolver,omitempty" toml:"resolver,omitempty"`
}
