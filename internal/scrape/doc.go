// Package scrape finds installer links and version numbers in vendor download
// pages.
//
// The package handles two tasks:
//
//  1. Locating the download path of the current installer in page HTML
//  2. Extracting a version token from that path for change detection
//
// # Locating Download Paths
//
// LocateDownloadPath scans the page tag by tag. Each tag matching the tag
// pattern is tested against the path pattern; the first capture wins:
//
//	path, err := scrape.LocateDownloadPath(html, scrape.Patterns{})
//	if errors.Is(err, scrape.ErrNoDownloadPathFound) {
//	    // page layout changed, adjust downloadPathPattern
//	}
//
// Both patterns can be overridden per software entry, see PatternsFor.
//
// # Version Tokens
//
// ExtractVersion returns the longest run of digits joined by dots or
// underscores:
//
//	v, _ := scrape.ExtractVersion("app-1.2-full-10.20.3000.exe") // "10.20.3000"
//
// Tokens are compared as plain strings; there is no semantic version ordering.
package scrape
