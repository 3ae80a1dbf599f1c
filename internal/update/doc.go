// Package update provides the orchestration logic that keeps the tracked
// installers current.
//
// # Manager
//
// The Manager processes the software list one title at a time, in order:
//
//  1. Merge the title's config into its state record and clear its error
//  2. Resolve the candidate download URL (special-case strategy or page scrape)
//  3. Extract the version token; stop here if it matches the stored version
//  4. Resolve the URL against the download page if it has no scheme
//  5. Pick a local file name that cannot collide with the previous download
//  6. Download the installer
//  7. Archive the previous file into old/ in the background
//  8. Record the new local path and version
//
// A failure in steps 2-8 is stored in the title's error flag and the run moves on.
//
// # Basic Usage
//
//	manager := update.NewManager("public/downloads", fetcher, client,
//	    update.WithProgress(func(event update.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    }),
//	)
//
//	summary := manager.Run(ctx, softwares, state)
//	err := config.SaveState("downloads.json", state)
//
// # Concurrency
//
// Titles are never processed in parallel: the state map and the downloads
// directory are shared without locking. Only archive moves run in the
// background, and Run waits for them before returning.
package update
