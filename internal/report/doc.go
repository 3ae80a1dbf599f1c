// Package report renders the static download page for the tracked installers.
//
// The page is built in two steps: a Markdown document with one table row per
// title is generated from the state, then converted to HTML with goldmark and
// its table extension. The result is wrapped in a minimal HTML page and written
// atomically, so a reader never sees a half-written report.
//
// # Basic Usage
//
//	err := report.Generate("public/index.html", softwares, state, report.Meta{
//	    RunID:       runID,
//	    GeneratedAt: time.Now(),
//	})
//
// Rows follow the order of the software list. Download links are relative to
// the directory holding the report.
package report
