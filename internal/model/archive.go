package model

import (
	"strings"
)

// DefaultPackagePrefix is the package family token shared by every wallpaper
// package directory and archive on the remote index.
const DefaultPackagePrefix = "mint-backgrounds"

// extraSuffix marks a variant package that contributes to the same release
// family as its base package (e.g. "nadia-extra" feeds "nadia").
const extraSuffix = "-extra"

// ArchiveSuffixes lists the archive file extensions recognised on package
// pages, in order of preference.
var ArchiveSuffixes = []string{".tar.gz", ".tar.xz"}

// RemoteArchive is an archive file listed on a remote package page.
//
// Filename is unique within Directory. SizeToken is the human readable size
// rendered by the listing (e.g. "16.5M"); it is empty when the listing did
// not show one.
//
// Example:
//
//	a := RemoteArchive{
//	    Filename:  "mint-backgrounds-nadia_1.4.tar.gz",
//	    SizeToken: "16.5M",
//	    Directory: "mint-backgrounds-nadia",
//	}
//	a.URL("http://packages.linuxmint.com/pool/main/m")
//	// "http://packages.linuxmint.com/pool/main/m/mint-backgrounds-nadia/mint-backgrounds-nadia_1.4.tar.gz"
type RemoteArchive struct {
	// Filename is the archive base name as published.
	Filename string

	// SizeToken is the size string shown next to the file in the listing.
	SizeToken string

	// Directory is the remote subdirectory the archive was found in.
	Directory string
}

// URL joins the archive location onto the base index URL.
func (a RemoteArchive) URL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/" + a.Directory + "/" + a.Filename
}

// Size returns the archive size in bytes derived from SizeToken.
func (a RemoteArchive) Size() int64 {
	return ParseSize(a.SizeToken)
}

// ArchiveName is the identity information encoded in an archive filename.
type ArchiveName struct {
	// Package is the package identity: the filename without the family
	// prefix, version suffix and archive extension.
	Package string

	// Version is everything after the version separator, or empty.
	Version string

	// Family is the release family the package contributes to.
	Family string
}

// ParseArchiveName splits an archive filename into package, version and
// release family.
//
//	ParseArchiveName("mint-backgrounds-xfce_2012.06.21.tar.gz", "mint-backgrounds")
//	// {Package: "xfce", Version: "2012.06.21", Family: "xfce"}
//	ParseArchiveName("mint-backgrounds-nadia-extra_1.2.tar.gz", "mint-backgrounds")
//	// {Package: "nadia-extra", Version: "1.2", Family: "nadia"}
func ParseArchiveName(filename, prefix string) ArchiveName {
	base, _ := TrimArchiveSuffix(filename)
	if prefix != "" {
		base = strings.TrimPrefix(base, prefix+"-")
	}

	name := ArchiveName{Package: base}
	if i := versionSeparator(base); i >= 0 {
		name.Package = base[:i]
		name.Version = base[i+1:]
	}
	name.Family = Family(name.Package)

	return name
}

// Family maps a package identity to its release family by dropping a
// trailing "-extra" variant marker.
func Family(pkg string) string {
	return strings.TrimSuffix(pkg, extraSuffix)
}

// HasArchiveSuffix reports whether name ends in one of ArchiveSuffixes.
func HasArchiveSuffix(name string) bool {
	_, ok := TrimArchiveSuffix(name)
	return ok
}

// TrimArchiveSuffix removes a known archive extension from name.
func TrimArchiveSuffix(name string) (string, bool) {
	for _, suffix := range ArchiveSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix), true
		}
	}
	return name, false
}

// versionSeparator finds the first underscore followed by a digit.
func versionSeparator(s string) int {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '_' && s[i+1] >= '0' && s[i+1] <= '9' {
			return i
		}
	}
	return -1
}
