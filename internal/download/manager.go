package download

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/handiism/mint-backgrounds/internal/config"
	ioutils "github.com/handiism/mint-backgrounds/internal/io"
	"github.com/handiism/mint-backgrounds/internal/model"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// Transport is the subset of the HTTP client the Manager needs.
// *http.Client satisfies it.
type Transport interface {
	GetFileSize(ctx context.Context, url string) (int64, error)
	DownloadFile(ctx context.Context, url, destPath string, onProgress func(written, total int64)) (int64, error)
}

// LocalArchive is an archive present in the work directory after a run.
type LocalArchive struct {
	Archive model.RemoteArchive

	// Path is <workDir>/<Filename>.
	Path string

	// Skipped is true when the local copy already matched the remote size
	// and nothing was transferred.
	Skipped bool

	// Received is the number of bytes transferred for this archive.
	Received int64
}

// Failure records an archive that could not be obtained.
type Failure struct {
	Archive model.RemoteArchive
	Err     error
}

// Result is the outcome of a download phase.
type Result struct {
	Requested     int
	Obtained      []LocalArchive
	Failed        []Failure
	BytesReceived int64
}

// Paths returns the local paths of every obtained archive.
func (r *Result) Paths() []string {
	paths := make([]string, len(r.Obtained))
	for i, a := range r.Obtained {
		paths[i] = a.Path
	}
	return paths
}

// Manager downloads archives into the work directory with bounded
// parallelism.
type Manager struct {
	client  Transport
	baseURL string
	workDir string
	workers int

	totalBytes     int64
	completedBytes int64
	totalFiles     int32
	doneFiles      int32

	onProgress model.ProgressFunc
}

// NewManager creates a new download Manager.
func NewManager(client Transport, settings *config.Settings, onProgress model.ProgressFunc) *Manager {
	workers := settings.DownloadWorkers
	if workers <= 0 {
		workers = 1
	}
	return &Manager{
		client:     client,
		baseURL:    settings.BaseURL,
		workDir:    settings.WorkDir,
		workers:    workers,
		onProgress: onProgress,
	}
}

// Download fetches every archive. A failing archive is reported and
// recorded in the result; it never stops the others. Obtained and Failed
// keep the input order. Archives sharing a filename are fetched once.
func (m *Manager) Download(ctx context.Context, archives []model.RemoteArchive) *Result {
	archives = uniqueByFilename(archives)
	result := &Result{Requested: len(archives)}

	atomic.StoreInt32(&m.totalFiles, int32(len(archives)))
	atomic.StoreInt32(&m.doneFiles, 0)
	atomic.StoreInt64(&m.completedBytes, 0)
	var total int64
	for _, a := range archives {
		total += a.Size()
	}
	atomic.StoreInt64(&m.totalBytes, total)

	if err := ioutils.EnsureDir(m.workDir); err != nil {
		for _, a := range archives {
			result.Failed = append(result.Failed, Failure{Archive: a, Err: err})
		}
		m.onProgress.Emit(model.LevelError, "Cannot prepare work directory",
			slog.String("dir", m.workDir), slog.Any("error", err))
		return result
	}

	obtained := make([]*LocalArchive, len(archives))
	failed := make([]error, len(archives))

	var g errgroup.Group
	g.SetLimit(m.workers)

	for i, archive := range archives {
		g.Go(func() error {
			local, err := m.fetch(ctx, archive)
			atomic.AddInt32(&m.doneFiles, 1)
			if err != nil {
				failed[i] = err
				m.onProgress.Emit(model.LevelError, "Download failed",
					slog.String("file", archive.Filename), slog.Any("error", err))
				return nil // Continue with other archives
			}
			obtained[i] = local
			return nil
		})
	}
	_ = g.Wait()

	for i, archive := range archives {
		switch {
		case obtained[i] != nil:
			result.Obtained = append(result.Obtained, *obtained[i])
			result.BytesReceived += obtained[i].Received
		case failed[i] != nil:
			result.Failed = append(result.Failed, Failure{Archive: archive, Err: failed[i]})
		}
	}

	return result
}

// GetProgress returns current download progress. Bytes count what is on
// disk for finished and in-flight archives against the listed sizes.
func (m *Manager) GetProgress() (completed, total int64, filesDone, filesTotal int32) {
	return atomic.LoadInt64(&m.completedBytes), atomic.LoadInt64(&m.totalBytes),
		atomic.LoadInt32(&m.doneFiles), atomic.LoadInt32(&m.totalFiles)
}

func (m *Manager) fetch(ctx context.Context, archive model.RemoteArchive) (*LocalArchive, error) {
	path := filepath.Join(m.workDir, archive.Filename)
	url := archive.URL(m.baseURL)
	local := &LocalArchive{Archive: archive, Path: path}

	// An existing file of the remote size is complete and a larger one is
	// stale. A smaller local file, or an unknown remote size, continues
	// with a ranged request.
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		remote, err := m.client.GetFileSize(ctx, url)
		switch {
		case err == nil && remote == info.Size():
			atomic.AddInt64(&m.completedBytes, remote)
			local.Skipped = true
			m.onProgress.Emit(model.LevelVerbose, "Skipping existing archive",
				slog.String("file", archive.Filename), slog.Int64("bytes", remote))
			return local, nil
		case err == nil && remote < info.Size():
			m.onProgress.Emit(model.LevelWarning, "Discarding stale archive",
				slog.String("file", archive.Filename),
				slog.Int64("local_bytes", info.Size()), slog.Int64("remote_bytes", remote))
			if err := os.Remove(path); err != nil {
				return nil, goerr.Wrap(err, "failed to remove stale archive", goerr.V("path", path))
			}
		}
	}

	var last int64
	n, err := m.client.DownloadFile(ctx, url, path, func(written, _ int64) {
		atomic.AddInt64(&m.completedBytes, written-last)
		last = written
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to download archive", goerr.V("file", archive.Filename))
	}

	local.Received = n
	m.onProgress.Emit(model.LevelInfo, "Downloaded archive",
		slog.String("file", archive.Filename), slog.Int64("received", n))
	return local, nil
}

func uniqueByFilename(archives []model.RemoteArchive) []model.RemoteArchive {
	seen := make(map[string]struct{}, len(archives))
	unique := make([]model.RemoteArchive, 0, len(archives))
	for _, a := range archives {
		if _, ok := seen[a.Filename]; ok {
			continue
		}
		seen[a.Filename] = struct{}{}
		unique = append(unique, a)
	}
	return unique
}
