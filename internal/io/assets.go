package ioutils

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ImageExtensions are the file extensions treated as wallpaper images,
// compared case-insensitively.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".svg"}

// IsImage reports whether name has one of ImageExtensions.
func IsImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range ImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// IsScreenshot reports whether name contains "screenshot", ignoring case.
func IsScreenshot(name string) bool {
	return strings.Contains(strings.ToLower(name), "screenshot")
}

// IsCredits reports whether name contains "credits", ignoring case.
func IsCredits(name string) bool {
	return strings.Contains(strings.ToLower(name), "credits")
}

// ImageStats walks root recursively and returns the number of image files
// and their combined size. A missing root counts as empty.
func ImageStats(root string) (count int, size int64, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root && errors.Is(walkErr, fs.ErrNotExist) {
				return filepath.SkipAll
			}
			return walkErr
		}
		if !d.Type().IsRegular() || !IsImage(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		count++
		size += info.Size()
		return nil
	})
	if err != nil {
		return 0, 0, goerr.Wrap(err, "failed to scan image tree", goerr.V("root", root))
	}
	return count, size, nil
}
