package ioutils

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var (
	invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	repeatedSpace    = regexp.MustCompile(`\s+`)
)

// CopyFile copies src to dst, replacing dst if it exists. The modification
// time of src is carried over.
//
// The data goes through a temporary file in the destination directory that
// is renamed over dst, so concurrent copies to the same dst leave one
// complete file.
//
// ctx is checked before the copy starts; a copy in progress is not
// interrupted.
//
// Example:
//
//	err := CopyFile(ctx, "/tmp/extract-1/backgrounds/nadia/a.jpg", "/out/nadia/a.jpg")
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return goerr.Wrap(err, "failed to open source", goerr.V("src", src))
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return goerr.Wrap(err, "failed to stat source", goerr.V("src", src))
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return goerr.Wrap(err, "failed to create destination", goerr.V("dst", dst))
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, sourceFile); err != nil {
		tmp.Close()
		return goerr.Wrap(err, "failed to copy file", goerr.V("src", src), goerr.V("dst", dst))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close destination", goerr.V("dst", dst))
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return goerr.Wrap(err, "failed to set file mode", goerr.V("dst", dst))
	}
	_ = os.Chtimes(tmp.Name(), info.ModTime(), info.ModTime())

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return goerr.Wrap(err, "failed to move file into place", goerr.V("dst", dst))
	}
	return nil
}

// WriteFileAtomic writes data to path through a temporary file in the same
// directory, so readers never observe a partially written file.
//
// Example:
//
//	data, _ := json.MarshalIndent(summary, "", "  ")
//	err := WriteFileAtomic("versions.json", data)
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("dir", dir))
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return goerr.Wrap(err, "failed to write temporary file", goerr.V("path", tmp.Name()))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temporary file", goerr.V("path", tmp.Name()))
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return goerr.Wrap(err, "failed to set file mode", goerr.V("path", tmp.Name()))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return goerr.Wrap(err, "failed to move file into place", goerr.V("path", path))
	}
	return nil
}

// SanitizeFileName replaces characters that are invalid in file or folder
// names on common platforms.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed
//   - Runs of whitespace → single space
//   - Surrounding whitespace → removed
//
// Example:
//
//	SanitizeFileName("nadia")           // "nadia"
//	SanitizeFileName("../../etc")       // ".._.._etc"
//	SanitizeFileName("Credits_a:b...")  // "Credits_a_b"
func SanitizeFileName(name string) string {
	name = invalidNameChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return goerr.Wrap(err, "failed to create directory", goerr.V("path", path))
	}
	return nil
}
