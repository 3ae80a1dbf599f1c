package ioutils

import "strings"

// FileNameOf returns the part of a URL or path after the last separator.
// Both '/' and '\' count as separators.
func FileNameOf(urlOrPath string) string {
	return urlOrPath[strings.LastIndexAny(urlOrPath, `/\`)+1:]
}

// ResolveFilename derives the local file name for a new download.
//
// The base name is taken from the URL path (query and fragment dropped) and
// sanitized. When the previously stored file has the same base name, version is
// inserted before the extension so the new download never collides with the file
// about to be archived.
//
// Example:
//
//	ResolveFilename("http://x/setup.exe", "2.0", "public/downloads/setup.exe") // "setup2.0.exe"
//	ResolveFilename("http://x/setup.exe", "2.0", "")                          // "setup.exe"
func ResolveFilename(url, version, previousLocalPath string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}

	filename := SanitizeFileName(FileNameOf(url))
	if filename == "" {
		filename = "download"
	}

	if previousLocalPath != "" && filename == FileNameOf(previousLocalPath) {
		filename = insertVersion(filename, version)
	}

	return filename
}

func insertVersion(filename, version string) string {
	dot := strings.LastIndex(filename, ".")
	if dot < 0 {
		return filename + version
	}
	return filename[:dot] + version + filename[dot:]
}
