package pipeline

import (
	"context"
	"log/slog"
	"os"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/handiism/mint-backgrounds/internal/config"
	"github.com/handiism/mint-backgrounds/internal/download"
	"github.com/handiism/mint-backgrounds/internal/extract"
	"github.com/handiism/mint-backgrounds/internal/http"
	ioutils "github.com/handiism/mint-backgrounds/internal/io"
	"github.com/handiism/mint-backgrounds/internal/listing"
	"github.com/handiism/mint-backgrounds/internal/model"
)

// Phase is the pipeline stage currently running.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseListing
	PhaseDownloading
	PhaseExtracting
	PhaseCleanup
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseListing:
		return "listing"
	case PhaseDownloading:
		return "downloading"
	case PhaseExtracting:
		return "extracting"
	case PhaseCleanup:
		return "cleanup"
	case PhaseDone:
		return "done"
	default:
		return "idle"
	}
}

// Progress is a point-in-time view of a running pipeline.
type Progress struct {
	Phase Phase

	// Files and bytes of the active phase. Bytes are only tracked while
	// downloading.
	FilesDone  int32
	FilesTotal int32
	BytesDone  int64
	BytesTotal int64
}

// Plan is the work a run would do, as decided by listing and filtering.
type Plan struct {
	Directories []string
	DirFailures []listing.DirFailure
	Candidates  []model.RemoteArchive
	Accepted    []model.RemoteArchive
	Rejected    []model.RemoteArchive
}

// Driver runs the mirror pipeline.
type Driver struct {
	settings   *config.Settings
	fetcher    *listing.Fetcher
	downloader *download.Manager
	extractor  *extract.Extractor
	filter     model.SizeFilter

	runID string
	phase atomic.Int32

	onProgress model.ProgressFunc
}

// NewDriver validates settings and wires the pipeline components around a
// shared HTTP client.
func NewDriver(settings *config.Settings, onProgress model.ProgressFunc) (*Driver, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	client := http.NewClient(
		http.WithTimeout(settings.RequestTimeout()),
		http.WithUserAgent(settings.UserAgent),
		http.WithRequestInterval(settings.RequestInterval()),
	)

	return &Driver{
		settings:   settings,
		fetcher:    listing.NewFetcher(client, settings.BaseURL, settings.PackagePrefix, onProgress),
		downloader: download.NewManager(client, settings, onProgress),
		extractor:  extract.NewExtractor(settings, onProgress),
		filter:     model.NewSizeFilter(settings.MinSizeBytes),
		runID:      uuid.NewString(),
		onProgress: onProgress,
	}, nil
}

// RunID identifies this driver's run in logs and the summary.
func (d *Driver) RunID() string {
	return d.runID
}

// Progress returns a snapshot of the active phase.
func (d *Driver) Progress() Progress {
	p := Progress{Phase: Phase(d.phase.Load())}
	switch p.Phase {
	case PhaseDownloading:
		p.BytesDone, p.BytesTotal, p.FilesDone, p.FilesTotal = d.downloader.GetProgress()
	case PhaseExtracting:
		p.FilesDone, p.FilesTotal = d.extractor.GetProgress()
	}
	return p
}

// Plan lists the index and applies the size filter. A failure to list the
// index is returned as an error; unreadable package pages are recorded in
// the plan.
func (d *Driver) Plan(ctx context.Context) (*Plan, error) {
	d.phase.Store(int32(PhaseListing))

	dirs, err := d.fetcher.Directories(ctx)
	if err != nil {
		return nil, err
	}

	candidates, failures := d.fetcher.Collect(ctx, dirs)
	accepted, rejected := d.filter.Split(candidates)

	for _, a := range rejected {
		d.onProgress.Emit(model.LevelInfo, "Skipping archive below size threshold",
			slog.String("file", a.Filename),
			slog.String("size", a.SizeToken),
			slog.Int64("min_bytes", d.filter.MinBytes))
	}
	d.onProgress.Emit(model.LevelInfo, "Selected archives",
		slog.Int("accepted", len(accepted)), slog.Int("rejected", len(rejected)))

	return &Plan{
		Directories: dirs,
		DirFailures: failures,
		Candidates:  candidates,
		Accepted:    accepted,
		Rejected:    rejected,
	}, nil
}

// Run executes the whole pipeline. The returned error is non-nil only when
// the package index could not be listed.
func (d *Driver) Run(ctx context.Context) (*Summary, error) {
	startedAt := time.Now()
	defer d.phase.Store(int32(PhaseDone))

	plan, err := d.Plan(ctx)
	if err != nil {
		return nil, err
	}

	d.phase.Store(int32(PhaseDownloading))
	downloaded := d.downloader.Download(ctx, plan.Accepted)

	d.phase.Store(int32(PhaseExtracting))
	extracted := d.extractor.ExtractAll(ctx, downloaded.Paths(), d.settings.ExtractWorkers)

	d.phase.Store(int32(PhaseCleanup))
	d.cleanup(downloaded)

	summary := d.summarize(plan, downloaded, extracted)
	summary.StartedAt = startedAt
	summary.FinishedAt = time.Now()
	return summary, nil
}

// cleanup deletes every obtained archive whatever its extraction outcome.
func (d *Driver) cleanup(downloaded *download.Result) {
	for _, a := range downloaded.Obtained {
		if err := os.Remove(a.Path); err != nil && !os.IsNotExist(err) {
			d.onProgress.Emit(model.LevelWarning, "Failed to delete archive",
				slog.String("path", a.Path), slog.Any("error", err))
		}
	}
}

func (d *Driver) summarize(plan *Plan, downloaded *download.Result, extracted []*extract.Result) *Summary {
	s := &Summary{
		RunID:            d.runID,
		Directories:      len(plan.Directories),
		DirectoryErrors:  len(plan.DirFailures),
		Candidates:       len(plan.Candidates),
		Accepted:         len(plan.Accepted),
		Skipped:          len(plan.Rejected),
		Requested:        downloaded.Requested,
		Downloaded:       len(downloaded.Obtained),
		DownloadFailures: len(downloaded.Failed),
		BytesReceived:    downloaded.BytesReceived,
	}

	sizes := make(map[string]string, len(plan.Accepted))
	for _, a := range plan.Accepted {
		if _, ok := sizes[a.Filename]; !ok {
			sizes[a.Filename] = a.SizeToken
		}
	}

	families := make(map[string]struct{})
	for _, r := range extracted {
		if r.Err != nil {
			s.ExtractFailures++
			continue
		}
		families[r.Family] = struct{}{}
		s.Packages = append(s.Packages, PackageEntry{
			Name:    r.Package,
			Version: model.ParseArchiveName(r.Archive, d.settings.PackagePrefix).Version,
			Family:  r.Family,
			Archive: r.Archive,
			Size:    sizes[r.Archive],
			Images:  r.Images,
		})
	}
	for f := range families {
		s.Families = append(s.Families, f)
	}
	sort.Strings(s.Families)
	sort.Slice(s.Packages, func(i, j int) bool { return s.Packages[i].Archive < s.Packages[j].Archive })

	count, size, err := ioutils.ImageStats(d.settings.OutputDir)
	if err != nil {
		d.onProgress.Emit(model.LevelWarning, "Failed to count images", slog.Any("error", err))
	}
	s.Images = count
	s.TotalImageBytes = size

	if name, version, ok := model.LatestRelease(d.outputFamilies()); ok {
		s.LatestRelease = name
		s.LatestVersion = version
	}

	return s
}

// outputFamilies lists the family folders present in the output directory,
// including those written by earlier runs.
func (d *Driver) outputFamilies() []string {
	entries, err := os.ReadDir(d.settings.OutputDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names
}
