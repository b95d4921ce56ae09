// Package pipeline sequences a mirror run: list, filter, download,
// extract, clean up, summarize.
//
// # Basic Usage
//
//	driver, err := pipeline.NewDriver(settings, onProgress)
//	if err != nil {
//	    return err
//	}
//
//	summary, err := driver.Run(ctx)
//	if err != nil {
//	    // fatal: the package index could not be listed
//	}
//	fmt.Printf("%d images in %d families\n", summary.Images, len(summary.Families))
//
// Only a failure to list the package index aborts a run. Every other
// failure is per item: it is reported through the progress callback,
// counted in the Summary, and the run carries on.
//
// # Dry Run
//
// Plan stops after the size filter and returns what Run would download.
package pipeline
