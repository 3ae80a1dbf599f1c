package http

import "context"

// DefaultAttempts is how many times a page fetch is tried before giving up.
const DefaultAttempts = 3

// TextGetter fetches the body of url as text.
type TextGetter interface {
	GetString(ctx context.Context, url string) (string, error)
}

// FetchText calls getter up to maxAttempts times and returns the first successful body.
//
// Attempts run back to back without delay. Every failure is reported to onFailure
// (which may be nil) with the 1-based attempt number. When all attempts fail the
// last error is returned unmodified. A cancelled context stops further attempts.
func FetchText(ctx context.Context, getter TextGetter, url string, maxAttempts int, onFailure func(attempt, maxAttempts int, err error)) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var body string
		body, err = getter.GetString(ctx, url)
		if err == nil {
			return body, nil
		}
		if onFailure != nil {
			onFailure(attempt, maxAttempts, err)
		}
		if ctx.Err() != nil {
			break
		}
	}
	return "", err
}

// RetryEvent describes one failed attempt of a Fetcher.
type RetryEvent struct {
	URL         string
	Attempt     int
	MaxAttempts int
	Err         error
}

// Final reports whether no further attempt follows this failure.
func (e RetryEvent) Final() bool {
	return e.Attempt >= e.MaxAttempts
}

// Fetcher fetches page text with bounded retry.
//
// Example:
//
//	fetcher := NewFetcher(NewClient(), DefaultAttempts, func(ev RetryEvent) {
//	    log.Printf("attempt %d/%d for %s failed: %v", ev.Attempt, ev.MaxAttempts, ev.URL, ev.Err)
//	})
//	html, err := fetcher.FetchText(ctx, "https://vendor.example/download/")
type Fetcher struct {
	getter   TextGetter
	attempts int
	onRetry  func(RetryEvent)
}

// NewFetcher creates a Fetcher that tries each URL up to attempts times.
// Non-positive attempts fall back to DefaultAttempts.
func NewFetcher(getter TextGetter, attempts int, onRetry func(RetryEvent)) *Fetcher {
	if attempts < 1 {
		attempts = DefaultAttempts
	}
	return &Fetcher{getter: getter, attempts: attempts, onRetry: onRetry}
}

// FetchText fetches url, retrying on any failure.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	return FetchText(ctx, f.getter, url, f.attempts, func(attempt, maxAttempts int, err error) {
		if f.onRetry != nil {
			f.onRetry(RetryEvent{URL: url, Attempt: attempt, MaxAttempts: maxAttempts, Err: err})
		}
	})
}
