// Package download fetches the accepted wallpaper archives into the work
// directory.
//
// # Manager
//
// The Manager runs one worker per archive up to the configured limit
// (settings.DownloadWorkers, 16 by default):
//
//  1. Resolve <base>/<dir>/<filename> and <workDir>/<filename>
//  2. If a local file exists, compare it with the remote size (HEAD)
//  3. Skip complete files, resume partial ones, fetch missing ones
//
// # Basic Usage
//
//	manager := download.NewManager(client, settings, func(event model.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	result := manager.Download(ctx, accepted)
//	fmt.Printf("%d/%d archives, %d bytes\n", len(result.Obtained), result.Requested, result.BytesReceived)
//
// # Failures
//
// A failed archive is reported at error level and listed in Result.Failed.
// Siblings keep running. A partially received file stays in the work
// directory and is continued by the next run; there is no in-run retry.
package download
