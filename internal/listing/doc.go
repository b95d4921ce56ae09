// Package listing discovers wallpaper package archives on the remote
// package index.
//
// Discovery is two steps: the index page names one directory per package
// ("mint-backgrounds-nadia/", "mint-backgrounds-xfce/"), and each directory
// page lists the archives published for that package together with their
// human readable sizes.
//
// # Basic Usage
//
//	fetcher := listing.NewFetcher(client, "http://packages.linuxmint.com/pool/main/m", "mint-backgrounds", nil)
//
//	dirs, err := fetcher.Directories(ctx)
//	if err != nil {
//	    // errors.Is(err, listing.ErrListingUnavailable) or listing.ErrNoDirectories
//	}
//
//	archives, failures := fetcher.Collect(ctx, dirs)
//
// # Page Formats
//
// Both Apache index styles are understood: the HTML table layout, where the
// size lives in a later cell of the archive's row, and the preformatted
// layout, where it is the last field of the text following the link. Pages
// matching neither fall back to scanning the few lines after the filename.
package listing
