package ioutils

import (
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// ArchiveDirName is the subdirectory of the downloads directory that receives
// superseded installers.
const ArchiveDirName = "old"

// Archiver moves superseded files into the archive directory in the background.
//
// Archive returns immediately; the move runs on its own goroutine and a failure is
// only reported to the error callback. Wait blocks until every pending move has
// finished.
//
// Example:
//
//	a := NewArchiver("public/downloads", func(path string, err error) {
//	    log.Printf("archive %s: %v", path, err)
//	})
//	a.Archive("public/downloads/setup.exe") // -> public/downloads/old/setup.exe
//	a.Wait()
type Archiver struct {
	dir     string
	onError func(path string, err error)
	group   errgroup.Group
}

// NewArchiver creates an Archiver that moves files into downloadsPath/old.
func NewArchiver(downloadsPath string, onError func(path string, err error)) *Archiver {
	return &Archiver{
		dir:     filepath.Join(downloadsPath, ArchiveDirName),
		onError: onError,
	}
}

// Dir returns the archive directory.
func (a *Archiver) Dir() string {
	return a.dir
}

// Archive schedules oldPath to be moved into the archive, keeping its base name.
// An empty path is ignored.
func (a *Archiver) Archive(oldPath string) {
	if oldPath == "" {
		return
	}
	dst := filepath.Join(a.dir, FileNameOf(oldPath))
	a.group.Go(func() error {
		if err := MoveFile(oldPath, dst); err != nil && a.onError != nil {
			a.onError(oldPath, err)
		}
		return nil
	})
}

// Wait blocks until all scheduled moves have completed.
func (a *Archiver) Wait() {
	_ = a.group.Wait()
}
