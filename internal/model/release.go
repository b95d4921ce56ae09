package model

import (
	"strings"
)

// mintReleases maps Linux Mint release code names to version numbers.
// Packages named after a release feed that release's family folder.
var mintReleases = map[string]float64{
	"katya":    11,
	"lisa":     12,
	"maya":     13,
	"nadia":    14,
	"olivia":   15,
	"petra":    16,
	"qiana":    17,
	"rafaela":  17.1,
	"rebecca":  17.2,
	"rosa":     17.3,
	"sarah":    18,
	"serena":   18.1,
	"sonya":    18.2,
	"sylvia":   18.3,
	"tara":     19,
	"tessa":    19.1,
	"tina":     19.2,
	"tricia":   19.3,
	"ulyana":   20,
	"ulyssa":   20.1,
	"uma":      20.2,
	"una":      20.3,
	"vanessa":  21,
	"vera":     21.1,
	"victoria": 21.2,
	"virginia": 21.3,
	"wilma":    22,
	"xia":      22.1,
	"zara":     22.2,
}

// ReleaseVersion returns the Mint version for a family name, if the family is
// named after a known release.
func ReleaseVersion(family string) (float64, bool) {
	v, ok := mintReleases[strings.ToLower(family)]
	return v, ok
}

// LatestRelease picks the newest Mint release among the given family names.
// The returned name is capitalized ("Wilma"); ok is false when none of the
// families is a known release.
func LatestRelease(families []string) (name string, version float64, ok bool) {
	for _, family := range families {
		v, known := ReleaseVersion(family)
		if !known || v <= version {
			continue
		}
		lower := strings.ToLower(family)
		name = strings.ToUpper(lower[:1]) + lower[1:]
		version = v
		ok = true
	}
	return name, version, ok
}
