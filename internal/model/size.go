package model

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultMinSizeBytes is the default archive size floor: 13 MiB. Smaller
// packages are legacy low resolution sets or placeholders.
const DefaultMinSizeBytes int64 = 13 * 1024 * 1024

var sizeTokenPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)([KMG])$`)

var sizeMultipliers = map[string]float64{
	"K": 1024,
	"M": 1024 * 1024,
	"G": 1024 * 1024 * 1024,
}

// IsSizeToken reports whether s looks like a listing size token such as
// "512K", "16.5M" or "1.1G".
func IsSizeToken(s string) bool {
	return sizeTokenPattern.MatchString(s)
}

// ParseSize converts a size token to bytes, truncating toward zero.
// Tokens that do not parse yield 0.
//
//	ParseSize("16.5M") // 17301504
//	ParseSize("512K")  // 524288
//	ParseSize("-")     // 0
func ParseSize(token string) int64 {
	m := sizeTokenPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return 0
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}

	return int64(value * sizeMultipliers[m[2]])
}

// SizeFilter accepts archives whose listed size reaches MinBytes.
type SizeFilter struct {
	MinBytes int64
}

// NewSizeFilter returns a filter with the given threshold, falling back to
// DefaultMinSizeBytes for non-positive values.
func NewSizeFilter(minBytes int64) SizeFilter {
	if minBytes <= 0 {
		minBytes = DefaultMinSizeBytes
	}
	return SizeFilter{MinBytes: minBytes}
}

// Accept reports whether a size token passes the threshold. Unparsable
// tokens count as zero bytes and are always rejected.
func (f SizeFilter) Accept(token string) bool {
	size := ParseSize(token)
	return size > 0 && size >= f.MinBytes
}

// Split partitions archives into accepted and rejected sets, preserving order.
func (f SizeFilter) Split(archives []RemoteArchive) (accepted, rejected []RemoteArchive) {
	for _, a := range archives {
		if f.Accept(a.SizeToken) {
			accepted = append(accepted, a)
		} else {
			rejected = append(rejected, a)
		}
	}
	return accepted, rejected
}
