package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/handiism/mint-backgrounds/internal/model"
	"github.com/handiism/mint-backgrounds/internal/pipeline"
)

var (
	headerColor  = color.New(color.FgGreen, color.Bold)
	labelColor   = color.New(color.FgCyan)
	acceptColor  = color.New(color.FgGreen)
	rejectColor  = color.New(color.FgHiBlack)
	warningColor = color.New(color.FgYellow)
)

// printSummary writes the end-of-run report. Counts are always printed,
// failures included.
func printSummary(w io.Writer, s *pipeline.Summary) {
	headerColor.Fprintln(w, "Sync complete")
	row(w, "Run", s.RunID)
	row(w, "Directories", fmt.Sprintf("%d", s.Directories))
	row(w, "Archives", fmt.Sprintf("%d accepted, %d below threshold", s.Accepted, s.Skipped))
	row(w, "Downloaded", fmt.Sprintf("%d/%d (%.2f MB received)", s.Downloaded, s.Requested, float64(s.BytesReceived)/1024/1024))
	row(w, "Families", fmt.Sprintf("%d", len(s.Families)))
	row(w, "Images", fmt.Sprintf("%d (%.1f MB)", s.Images, float64(s.TotalImageBytes)/1024/1024))
	if s.LatestRelease != "" {
		row(w, "Latest", fmt.Sprintf("%s (%g)", s.LatestRelease, s.LatestVersion))
	}
	row(w, "Duration", s.Duration().Round(time.Millisecond).String())

	if s.DirectoryErrors > 0 || s.DownloadFailures > 0 || s.ExtractFailures > 0 {
		warningColor.Fprintf(w, "%d directory, %d download and %d extraction failures\n",
			s.DirectoryErrors, s.DownloadFailures, s.ExtractFailures)
	}
}

// printPlan lists accepted archives, and rejected ones too when all is set.
func printPlan(w io.Writer, p *pipeline.Plan, prefix string, all bool) {
	headerColor.Fprintf(w, "%d directories, %d archives, %d above threshold\n",
		len(p.Directories), len(p.Candidates), len(p.Accepted))

	for _, a := range p.Accepted {
		acceptColor.Fprintf(w, "  + %-50s %8s  %s\n", a.Filename, sizeLabel(a), model.ParseArchiveName(a.Filename, prefix).Family)
	}
	if all {
		for _, a := range p.Rejected {
			rejectColor.Fprintf(w, "  - %-50s %8s\n", a.Filename, sizeLabel(a))
		}
	}
	for _, f := range p.DirFailures {
		warningColor.Fprintf(w, "  ! %s: %v\n", f.Directory, f.Err)
	}
}

func row(w io.Writer, label, value string) {
	labelColor.Fprintf(w, "  %-12s", label)
	fmt.Fprintln(w, value)
}

func sizeLabel(a model.RemoteArchive) string {
	if a.SizeToken == "" {
		return "?"
	}
	return a.SizeToken
}
