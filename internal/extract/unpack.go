package extract

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ulikunitz/xz"
)

// openArchive returns a tar reader over the decompressed archive stream.
// The returned closer releases the decompressor and the file.
func openArchive(path string) (*tar.Reader, func(), error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open archive", goerr.V("path", path))
	}

	var (
		stream  io.Reader
		closers = []func(){func() { file.Close() }}
	)
	switch {
	case strings.HasSuffix(path, ".tar.gz"):
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, goerr.Wrap(err, "invalid gzip stream", goerr.V("path", path))
		}
		closers = append(closers, func() { gz.Close() })
		stream = gz
	case strings.HasSuffix(path, ".tar.xz"):
		xr, err := xz.NewReader(bufio.NewReader(file))
		if err != nil {
			file.Close()
			return nil, nil, goerr.Wrap(err, "invalid xz stream", goerr.V("path", path))
		}
		stream = xr
	default:
		file.Close()
		return nil, nil, goerr.New("unsupported archive format", goerr.V("path", path))
	}

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	return tar.NewReader(stream), closeAll, nil
}

// unpack extracts regular files and directories of the archive under dest.
// Links, devices and entries that would land outside dest are skipped.
func unpack(ctx context.Context, path, dest string) error {
	tr, closeArchive, err := openArchive(path)
	if err != nil {
		return err
	}
	defer closeArchive()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return goerr.Wrap(err, "corrupt archive", goerr.V("path", path))
		}

		target, ok := within(dest, hdr.Name)
		if !ok {
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return goerr.Wrap(err, "failed to create directory", goerr.V("dir", target))
			}
		case tar.TypeReg:
			if err := writeEntry(tr, target); err != nil {
				return goerr.Wrap(err, "failed to extract entry", goerr.V("entry", hdr.Name), goerr.V("path", path))
			}
		}
	}
}

func writeEntry(r io.Reader, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// within joins name onto root and reports whether the result stays inside
// root.
func within(root, name string) (string, bool) {
	target := filepath.Join(root, filepath.FromSlash(name))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return target, true
}
