// Package extract unpacks downloaded wallpaper archives into one folder per
// release family.
//
// Each archive is unpacked into its own scratch directory, which is removed
// afterwards whatever the outcome. From the unpacked tree:
//   - images (.jpg, .jpeg, .png, .svg) not named like a screenshot are copied
//     flat into <output>/<family>/, replacing files of the same name
//   - any file whose name mentions credits is copied as
//     <output>/<family>/Credits_<package>
//
// The family of "nadia-extra" is "nadia", so both packages land in the same
// folder and each keeps its own credits file.
//
// # Basic Usage
//
//	extractor := extract.NewExtractor(settings, onProgress)
//	results := extractor.ExtractAll(ctx, downloaded.Paths(), settings.ExtractWorkers)
//	for _, r := range results {
//	    if r.Err != nil {
//	        // already reported through onProgress
//	    }
//	}
package extract
