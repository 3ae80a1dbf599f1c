package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "installer-tracker"

	// DefaultTimeout bounds a single request, including reading the body.
	DefaultTimeout = 60 * time.Second
)

// FetchError describes a failed request: a transport error or a non-2xx response.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d: %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client wraps HTTP operations for scraping download pages and fetching installers.
//
// Client provides:
//   - Configured User-Agent header
//   - Per-request timeout handling
//   - Page text retrieval
//   - File download with progress tracking
//
// Example usage:
//
//	client := NewClient(WithUserAgent("my-tracker"), WithTimeout(30*time.Second))
//
//	// Fetch HTML content
//	html, err := client.GetString(ctx, "https://vendor.example/download/")
//
//	// Download an installer
//	err = client.DownloadFile(ctx, installerURL, "public/downloads/setup.exe", nil)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new HTTP client.
//
// Without options the client is configured with:
//   - 60 second timeout
//   - "installer-tracker" User-Agent header
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProgressWriter wraps a writer to track download progress.
//
// Example:
//
//	pw := &ProgressWriter{
//	    Writer: file,
//	    Total:  contentLength,
//	    OnUpdate: func(written, total int64) {
//	        fmt.Printf("%d / %d bytes\n", written, total)
//	    },
//	}
//	io.Copy(pw, response.Body)
type ProgressWriter struct {
	// Writer is the underlying writer to write data to.
	Writer io.Writer

	// Total is the expected total bytes (from Content-Length header), -1 if unknown.
	Total int64

	// Written is the current number of bytes written.
	Written int64

	// OnUpdate is called after each Write with (bytesWritten, totalExpected).
	OnUpdate func(written, total int64)
}

// Write implements io.Writer, tracking progress and calling OnUpdate.
func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.Writer.Write(p)
	pw.Written += int64(n)
	if pw.OnUpdate != nil {
		pw.OnUpdate(pw.Written, pw.Total)
	}
	return n, err
}

// do sends a GET request and returns the response if its status is 2xx.
// The caller must close the body.
func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	return resp, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns a *FetchError if the request fails, the response status is not 2xx
// or reading the body fails.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return body, nil
}

// GetString performs a GET request and returns the response body as a string.
//
// Example:
//
//	html, err := client.GetString(ctx, "https://vendor.example/download/")
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DownloadFile downloads url to destPath with an optional progress callback.
//
// The content is streamed to destPath + ".part" and renamed into place once the
// body has been fully written, so an interrupted download never leaves a
// truncated file under the final name.
//
// Parameters:
//   - ctx: Context for cancellation
//   - url: URL to download from
//   - destPath: Local file path to save to
//   - onProgress: Optional callback called with (bytesWritten, totalBytes)
//     Pass nil to disable progress tracking
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	resp, err := c.do(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	partPath := destPath + ".part"
	file, err := os.Create(partPath)
	if err != nil {
		return err
	}

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    resp.ContentLength,
			OnUpdate: onProgress,
		}
	}

	_, err = io.Copy(writer, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(partPath)
		return &FetchError{URL: url, Err: err}
	}

	return os.Rename(partPath, destPath)
}
