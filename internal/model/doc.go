// Package model defines the core data structures and naming rules used
// throughout the mint-backgrounds mirror.
//
// # Remote archives
//
// RemoteArchive is one archive listed on a remote package page:
//
//	a := model.RemoteArchive{Filename: "mint-backgrounds-nadia_1.4.tar.gz", SizeToken: "16.5M", Directory: "mint-backgrounds-nadia"}
//	a.Size() // 17301504
//
// # Size filtering
//
// SizeFilter decides inclusion from the listing's size token:
//
//	f := model.NewSizeFilter(model.DefaultMinSizeBytes)
//	f.Accept("16.5M") // true
//	f.Accept("512K")  // false
//	f.Accept("")      // false
//
// # Package identity and release families
//
// ParseArchiveName derives the package identity and the release family
// (the output folder key) from an archive filename:
//
//	n := model.ParseArchiveName("mint-backgrounds-nadia-extra_1.2.tar.gz", model.DefaultPackagePrefix)
//	// n.Package == "nadia-extra", n.Family == "nadia"
package model
