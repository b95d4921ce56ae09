// Package http provides the HTTP client used to read the package index and
// fetch archives.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Request pacing (golang.org/x/time/rate)
//   - Resumable file downloads with progress tracking
//   - File size retrieval via HEAD requests
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient(http.WithRequestInterval(250 * time.Millisecond))
//
//	// Fetch listing page
//	page, err := client.GetString(ctx, "http://packages.linuxmint.com/pool/main/m/")
//
//	// Download (or continue) an archive
//	n, err := client.DownloadFile(ctx, archiveURL, "/work/mint-backgrounds-nadia_1.4.tar.gz", nil)
//
// # Errors
//
// Non-success responses are reported as *StatusError so callers can inspect
// the status code with errors.As.
package http
