package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/handiism/mint-backgrounds/internal/model"
	"github.com/m-mizutani/goerr/v2"
)

var (
	// ErrListingUnavailable means the index page could not be fetched or
	// parsed. It is fatal for a run.
	ErrListingUnavailable = errors.New("package listing unavailable")

	// ErrNoDirectories means the index was readable but named no package
	// directories.
	ErrNoDirectories = errors.New("no package directories found")
)

// PageGetter fetches a page body. *http.Client satisfies it.
type PageGetter interface {
	GetString(ctx context.Context, url string) (string, error)
}

// DirFailure records a package directory whose page could not be read.
type DirFailure struct {
	Directory string
	Err       error
}

// Fetcher reads the package index and package directory pages.
type Fetcher struct {
	client     PageGetter
	baseURL    string
	prefix     string
	onProgress model.ProgressFunc
}

// NewFetcher creates a Fetcher for the index at baseURL. prefix selects the
// package directories (e.g. "mint-backgrounds").
func NewFetcher(client PageGetter, baseURL, prefix string, onProgress model.ProgressFunc) *Fetcher {
	return &Fetcher{
		client:     client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		prefix:     prefix,
		onProgress: onProgress,
	}
}

// Directories returns the package directory names on the index page.
func (f *Fetcher) Directories(ctx context.Context) ([]string, error) {
	url := f.baseURL + "/"
	f.onProgress.Emit(model.LevelVerbose, "Fetching package index", slog.String("url", url))

	page, err := f.client.GetString(ctx, url)
	if err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", ErrListingUnavailable, err), "failed to read package index", goerr.V("url", url))
	}

	dirs, err := ParseIndex(page, f.prefix)
	if err != nil {
		return nil, goerr.Wrap(fmt.Errorf("%w: %w", ErrListingUnavailable, err), "failed to read package index", goerr.V("url", url))
	}
	if len(dirs) == 0 {
		return nil, goerr.Wrap(ErrNoDirectories, "index lists no package directories",
			goerr.V("url", url), goerr.V("prefix", f.prefix))
	}

	f.onProgress.Emit(model.LevelInfo, "Found package directories", slog.Int("count", len(dirs)))
	return dirs, nil
}

// Archives returns the archives listed in one package directory.
func (f *Fetcher) Archives(ctx context.Context, dir string) ([]model.RemoteArchive, error) {
	url := f.baseURL + "/" + dir + "/"

	page, err := f.client.GetString(ctx, url)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch package page", goerr.V("dir", dir), goerr.V("url", url))
	}

	return ParsePackagePage(page, dir)
}

// Collect gathers the archives of every directory in order. A directory
// that cannot be read is reported and skipped; the remaining directories
// are still processed. Collection stops early only when ctx is done.
func (f *Fetcher) Collect(ctx context.Context, dirs []string) ([]model.RemoteArchive, []DirFailure) {
	var (
		archives []model.RemoteArchive
		failures []DirFailure
	)

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			failures = append(failures, DirFailure{Directory: dir, Err: err})
			continue
		}

		found, err := f.Archives(ctx, dir)
		if err != nil {
			f.onProgress.Emit(model.LevelWarning, "Skipping package directory",
				slog.String("dir", dir), slog.Any("error", err))
			failures = append(failures, DirFailure{Directory: dir, Err: err})
			continue
		}

		f.onProgress.Emit(model.LevelVerbose, "Parsed package page",
			slog.String("dir", dir), slog.Int("archives", len(found)))
		archives = append(archives, found...)
	}

	return archives, failures
}
