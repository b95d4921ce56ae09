package pipeline

import (
	"encoding/json"
	"time"

	ioutils "github.com/handiism/mint-backgrounds/internal/io"
	"github.com/m-mizutani/goerr/v2"
)

// Summary reports the outcome of a run. It is printed at the end of every
// run and can be written as JSON for release tooling.
type Summary struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Listing
	Directories     int `json:"directories"`
	DirectoryErrors int `json:"directory_errors"`
	Candidates      int `json:"candidates"`
	Accepted        int `json:"accepted"`
	Skipped         int `json:"skipped"`

	// Download
	Requested        int   `json:"requested"`
	Downloaded       int   `json:"downloaded"`
	DownloadFailures int   `json:"download_failures"`
	BytesReceived    int64 `json:"bytes_received"`

	// Extraction
	Families        []string       `json:"families"`
	ExtractFailures int            `json:"extract_failures"`
	Packages        []PackageEntry `json:"packages"`

	// Output tree
	Images          int     `json:"total_images"`
	TotalImageBytes int64   `json:"total_image_bytes"`
	LatestRelease   string  `json:"latest_mint_release,omitempty"`
	LatestVersion   float64 `json:"latest_mint_version,omitempty"`
}

// PackageEntry describes one archive extracted during the run.
type PackageEntry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Family  string `json:"family"`
	Archive string `json:"archive"`
	Size    string `json:"size"`
	Images  int    `json:"images"`
}

// Duration returns how long the run took.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

// WriteSummary writes s as indented JSON to path, replacing any previous
// file atomically.
func WriteSummary(path string, s *Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode summary")
	}
	if err := ioutils.WriteFileAtomic(path, append(data, '\n')); err != nil {
		return goerr.Wrap(err, "failed to write summary", goerr.V("path", path))
	}
	return nil
}
