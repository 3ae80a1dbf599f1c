// Package http provides the HTTP transport for scraping download pages and
// fetching installers.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Per-request timeouts
//   - Page text retrieval
//   - File downloads with progress tracking
//
// # Basic Usage
//
//	client := http.NewClient()
//
//	// Fetch HTML page
//	html, err := client.GetString(ctx, "https://vendor.example/download/")
//
//	// Download an installer
//	err = client.DownloadFile(ctx, installerURL, "public/downloads/setup.exe", nil)
//
// # Retries
//
// Page fetches go through a Fetcher, which retries immediately up to a fixed
// number of attempts and returns the last error unmodified:
//
//	fetcher := http.NewFetcher(client, http.DefaultAttempts, onRetry)
//	html, err := fetcher.FetchText(ctx, pageURL)
//
// # Errors
//
// Transport failures and non-2xx responses are reported as *FetchError:
//
//	var fe *http.FetchError
//	if errors.As(err, &fe) && fe.StatusCode == 404 {
//	    // page moved
//	}
package http
