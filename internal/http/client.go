package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/time/rate"
)

// StatusError is returned when the server answers with an unexpected status.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s (URL: %s)", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// Client wraps HTTP operations against the package index.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - Request pacing through a token bucket limiter shared by all requests
//   - Resumable file downloads with progress tracking
//   - File size retrieval via HEAD requests
//
// Example usage:
//
//	client := NewClient(WithUserAgent("mint-backgrounds"), WithRequestInterval(250*time.Millisecond))
//
//	// Fetch a listing page
//	html, err := client.GetString(ctx, "http://packages.linuxmint.com/pool/main/m/")
//
//	// Download (or resume) a file
//	n, err := client.DownloadFile(ctx, archiveURL, "/tmp/archive.tar.gz", nil)
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRequestInterval spaces requests at least d apart. Zero disables pacing.
func WithRequestInterval(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
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
// Without options the client uses a 60 second timeout, a
// "mint-backgrounds" User-Agent and no request pacing.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		userAgent: "mint-backgrounds",
		limiter:   rate.NewLimiter(rate.Inf, 1),
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

	// Total is the expected total bytes, or -1 if unknown.
	Total int64

	// Written is the current number of bytes written, including any
	// offset the download resumed from.
	Written int64

	// OnUpdate is called after each Write with current progress.
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

func (c *Client) newRequest(ctx context.Context, method, url string) (*http.Request, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, goerr.Wrap(err, "request pacing interrupted", goerr.V("url", url))
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create request", goerr.V("url", url))
	}
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns a *StatusError if the response status is not 200 OK.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "GET request failed", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read response body", goerr.V("url", url))
	}
	return body, nil
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching listing pages.
func (c *Client) GetString(ctx context.Context, url string) (string, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetFileSize returns the size of a file at the given URL via HEAD request.
//
// Returns an error if the request fails, the status is not 200 OK, or the
// server doesn't return a Content-Length header.
func (c *Client) GetFileSize(ctx context.Context, url string) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodHead, url)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, goerr.Wrap(err, "HEAD request failed", goerr.V("url", url))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}
	if resp.ContentLength < 0 {
		return 0, goerr.New("no Content-Length header", goerr.V("url", url))
	}

	return resp.ContentLength, nil
}

// DownloadFile downloads url to destPath, resuming a partial file.
//
// If destPath already holds n bytes the request asks for "bytes=n-":
//   - 206 Partial Content appends the remainder,
//   - 200 OK (range ignored) rewrites the file from scratch,
//   - 416 Range Not Satisfiable means the file is already complete.
//
// The returned count is the number of bytes received over the network by
// this call. onProgress, if set, sees the absolute file size so far.
//
// Example:
//
//	n, err := client.DownloadFile(ctx, archiveURL, "/work/a.tar.gz", func(written, total int64) {
//	    if total > 0 {
//	        fmt.Printf("%.1f%%\r", float64(written)/float64(total)*100)
//	    }
//	})
func (c *Client) DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int64, error) {
	var offset int64
	if info, err := os.Stat(destPath); err == nil && info.Mode().IsRegular() {
		offset = info.Size()
	}

	req, err := c.newRequest(ctx, http.MethodGet, url)
	if err != nil {
		return 0, err
	}
	if offset > 0 {
		req.Header.Set("Range", "bytes="+strconv.FormatInt(offset, 10)+"-")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, goerr.Wrap(err, "GET request failed", goerr.V("url", url))
	}
	defer resp.Body.Close()

	flags := os.O_CREATE | os.O_WRONLY
	switch {
	case resp.StatusCode == http.StatusPartialContent && offset > 0:
		flags |= os.O_APPEND
	case resp.StatusCode == http.StatusOK:
		flags |= os.O_TRUNC
		offset = 0
	case resp.StatusCode == http.StatusRequestedRangeNotSatisfiable && offset > 0:
		return 0, nil
	default:
		return 0, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	file, err := os.OpenFile(destPath, flags, 0644)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open destination", goerr.V("path", destPath))
	}
	defer file.Close()

	total := int64(-1)
	if resp.ContentLength >= 0 {
		total = offset + resp.ContentLength
	}

	var writer io.Writer = file
	if onProgress != nil {
		writer = &ProgressWriter{
			Writer:   file,
			Total:    total,
			Written:  offset,
			OnUpdate: onProgress,
		}
	}

	n, err := io.Copy(writer, resp.Body)
	if err != nil {
		return n, goerr.Wrap(err, "download interrupted", goerr.V("url", url), goerr.V("received", n))
	}
	if err := file.Close(); err != nil {
		return n, goerr.Wrap(err, "failed to flush destination", goerr.V("path", destPath))
	}
	return n, nil
}
