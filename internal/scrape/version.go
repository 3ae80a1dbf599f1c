package scrape

import (
	"fmt"
	"regexp"
)

var versionPattern = regexp.MustCompile(`\d[_.\d]+\d`)

// ExtractVersion returns the longest digit/period/underscore run in path.
//
// A token starts and ends with a digit and is at least three characters long.
// Matches are scanned left to right; a later match replaces the current one only
// when it is strictly longer, so the leftmost token wins a tie.
//
// Returns an error wrapping ErrNoVersionFound if path has no token.
//
// Example:
//
//	ExtractVersion("/dl/setup_7_2_1.exe")          // "7_2_1"
//	ExtractVersion("app-1.2-full-10.20.3000.exe") // "10.20.3000"
func ExtractVersion(path string) (string, error) {
	version := ""
	for _, match := range versionPattern.FindAllString(path, -1) {
		if len(match) > len(version) {
			version = match
		}
	}
	if version == "" {
		return "", fmt.Errorf("%w: %s", ErrNoVersionFound, path)
	}
	return version, nil
}
