// Package ioutils provides file system utilities for installer-tracker.
//
// This package contains functions for:
//   - Deriving collision-free file names for new downloads
//   - Filename sanitization
//   - Directory creation, moves and atomic writes
//   - Archiving superseded installers
//
// # File Names
//
// ResolveFilename takes the name from the download URL and embeds the version
// when the previous download used the same name:
//
//	name := ioutils.ResolveFilename(url, "2.0", "public/downloads/setup.exe")
//	// "setup2.0.exe"
//
// # Archiving
//
// Superseded files are moved, never deleted, into the old/ directory under the
// downloads directory. Moves run in the background:
//
//	a := ioutils.NewArchiver("public/downloads", onError)
//	a.Archive(previousPath)
//	a.Wait()
package ioutils
