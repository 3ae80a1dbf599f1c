// Package app wires the tracker together for the command line tools.
//
// Run performs one complete pass:
//
//  1. Load the software list and the persisted state
//  2. Build the HTTP client, the retrying fetcher and the update manager
//  3. Process every title
//  4. Save the state, then write the metrics textfile and the HTML report
//
// Loading and saving errors abort the pass. Per-title failures never do; they
// end up in the state's error flags and in the report.
package app
