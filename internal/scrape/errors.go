package scrape

import "errors"

var (
	// ErrNoDownloadPathFound is returned when no tag on the page yields a path match.
	//
	// This typically occurs when:
	//   - The vendor changed the page layout
	//   - The page is rendered client-side and the links are not in the HTML
	//   - The configured pattern overrides are too strict
	ErrNoDownloadPathFound = errors.New("no matching download path found on download page")

	// ErrNoVersionFound is returned when a download path has no version-shaped token.
	ErrNoVersionFound = errors.New("no version number found in download path")

	// ErrInvalidPattern is returned when a configured pattern override does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)
