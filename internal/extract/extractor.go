package extract

import (
	"context"
	"io/fs"
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

// CreditsPrefix is prepended to the package identity to name the credits
// file copied out of an archive.
const CreditsPrefix = "Credits_"

// Result is the outcome of extracting one archive.
type Result struct {
	// Archive is the archive file name.
	Archive string

	Package string
	Family  string

	// Images is the number of image files copied into the family folder.
	Images int

	// Credits is the number of credits files copied. Several credits files
	// in one archive share a destination, so the last one copied wins.
	Credits int

	Err error
}

// Extractor unpacks archives into family folders under the output
// directory.
type Extractor struct {
	outputDir   string
	scratchRoot string
	prefix      string

	done  int32
	total int32

	onProgress model.ProgressFunc
}

// NewExtractor creates an Extractor. An empty settings.ScratchDir uses the
// system temporary directory for scratch workspaces.
func NewExtractor(settings *config.Settings, onProgress model.ProgressFunc) *Extractor {
	return &Extractor{
		outputDir:   settings.OutputDir,
		scratchRoot: settings.ScratchDir,
		prefix:      settings.PackagePrefix,
		onProgress:  onProgress,
	}
}

// ExtractAll extracts every archive with up to workers running at once.
// Results keep the order of paths; failures are reported and recorded in
// their Result without affecting the others.
func (e *Extractor) ExtractAll(ctx context.Context, paths []string, workers int) []*Result {
	if workers <= 0 {
		workers = 1
	}
	atomic.StoreInt32(&e.total, int32(len(paths)))
	atomic.StoreInt32(&e.done, 0)

	results := make([]*Result, len(paths))

	var g errgroup.Group
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			result, err := e.Extract(ctx, path)
			atomic.AddInt32(&e.done, 1)
			if err != nil {
				e.onProgress.Emit(model.LevelError, "Extraction failed",
					slog.String("archive", result.Archive), slog.Any("error", err))
			} else {
				e.onProgress.Emit(model.LevelSuccess, "Extracted archive",
					slog.String("archive", result.Archive),
					slog.String("family", result.Family),
					slog.Int("images", result.Images))
			}
			results[i] = result
			return nil // Continue with other archives
		})
	}
	_ = g.Wait()

	return results
}

// GetProgress returns how many archives have been processed out of the
// current batch.
func (e *Extractor) GetProgress() (done, total int32) {
	return atomic.LoadInt32(&e.done), atomic.LoadInt32(&e.total)
}

// Extract unpacks one archive and merges its assets into the family
// folder. The returned Result is never nil; on failure its Err is set and
// also returned.
func (e *Extractor) Extract(ctx context.Context, archivePath string) (*Result, error) {
	filename := filepath.Base(archivePath)
	name := model.ParseArchiveName(filename, e.prefix)
	result := &Result{
		Archive: filename,
		Package: name.Package,
		Family:  name.Family,
	}

	fail := func(err error) (*Result, error) {
		result.Err = err
		return result, err
	}

	family := ioutils.SanitizeFileName(name.Family)
	if family == "" {
		return fail(goerr.New("archive name has no package identity", goerr.V("archive", filename)))
	}

	if e.scratchRoot != "" {
		if err := ioutils.EnsureDir(e.scratchRoot); err != nil {
			return fail(err)
		}
	}
	scratch, err := os.MkdirTemp(e.scratchRoot, "extract-*")
	if err != nil {
		return fail(goerr.Wrap(err, "failed to create scratch directory", goerr.V("root", e.scratchRoot)))
	}
	defer os.RemoveAll(scratch)

	e.onProgress.Emit(model.LevelVerbose, "Unpacking archive",
		slog.String("archive", filename), slog.String("scratch", scratch))

	if err := unpack(ctx, archivePath, scratch); err != nil {
		return fail(err)
	}

	familyDir := filepath.Join(e.outputDir, family)
	if err := ioutils.EnsureDir(familyDir); err != nil {
		return fail(err)
	}

	creditsName := CreditsPrefix + ioutils.SanitizeFileName(name.Package)
	err = filepath.WalkDir(scratch, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}

		switch {
		case ioutils.IsImage(d.Name()):
			if ioutils.IsScreenshot(d.Name()) {
				return nil
			}
			if err := ioutils.CopyFile(ctx, path, filepath.Join(familyDir, d.Name())); err != nil {
				return err
			}
			result.Images++
		case ioutils.IsCredits(d.Name()):
			if err := ioutils.CopyFile(ctx, path, filepath.Join(familyDir, creditsName)); err != nil {
				return err
			}
			result.Credits++
		}
		return nil
	})
	if err != nil {
		return fail(goerr.Wrap(err, "failed to collect assets", goerr.V("archive", filename)))
	}

	return result, nil
}
