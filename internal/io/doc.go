// Package ioutils provides the file system helpers shared by the extractor
// and the pipeline.
//
// This package contains functions for:
//   - Copying extracted files into family folders (overwrite semantics)
//   - Atomic writes for the run summary
//   - Name sanitization for folders derived from remote filenames
//   - Classifying wallpaper assets (images, screenshots, credits)
//   - Image tree statistics
//
// # File Operations
//
//	err := ioutils.CopyFile(ctx, "/tmp/extract-123/usr/share/backgrounds/a.jpg", "/out/nadia/a.jpg")
//	err := ioutils.WriteFileAtomic("/out/summary.json", data)
//	err := ioutils.EnsureDir("/out/nadia")
//
// # Asset Classification
//
//	ioutils.IsImage("Sunset.JPG")          // true
//	ioutils.IsScreenshot("screenshot.png") // true
//	ioutils.IsCredits("CREDITS")           // true
//
//	count, bytes, err := ioutils.ImageStats("/out")
package ioutils
