package listing

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/handiism/mint-backgrounds/internal/model"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/net/html"
)

// fallbackLines is how many lines, starting at the filename, the raw text
// scan looks at for a size token.
const fallbackLines = 3

var fallbackSizePattern = regexp.MustCompile(`(?:^|[\s>])(\d+(?:\.\d+)?[KMG])(?:[\s<]|$)`)

// ParseIndex returns the package directory names linked from the index
// page, sorted and without duplicates. Only directory links whose name
// starts with prefix followed by "-" are returned.
//
//	ParseIndex(`<a href="mint-backgrounds-nadia/">...</a>`, "mint-backgrounds")
//	// ["mint-backgrounds-nadia"]
func ParseIndex(page, prefix string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse index page")
	}

	seen := make(map[string]struct{})
	var dirs []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.HasSuffix(href, "/") {
			return
		}
		name := path.Base(strings.TrimSuffix(strings.TrimPrefix(href, "./"), "/"))
		if !strings.HasPrefix(name, prefix+"-") {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		dirs = append(dirs, name)
	})

	sort.Strings(dirs)
	return dirs, nil
}

// ParsePackagePage returns the archives linked from a package directory
// page, in page order. A filename linked more than once keeps its first
// occurrence. Archives whose size cannot be located get an empty SizeToken.
func ParsePackagePage(page, dir string) ([]model.RemoteArchive, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse package page", goerr.V("dir", dir))
	}

	seen := make(map[string]struct{})
	var archives []model.RemoteArchive
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		name := path.Base(href)
		if !model.HasArchiveSuffix(name) {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}

		archives = append(archives, model.RemoteArchive{
			Filename:  name,
			SizeToken: locateSize(s, page, name),
			Directory: dir,
		})
	})

	return archives, nil
}

// locateSize finds the size token for the archive link s. The enclosing
// table row wins, then the text following the link. The raw page scan is
// only used when the link has neither.
func locateSize(s *goquery.Selection, page, name string) string {
	if row := s.Closest("tr"); row.Length() > 0 {
		return sizeFromRow(s, row)
	}
	if line, ok := trailingLine(s); ok {
		return sizeFromLine(line)
	}
	return sizeFromText(page, name)
}

func sizeFromRow(link, row *goquery.Selection) string {
	cells := row.Find("td")
	if cell := link.Closest("td"); cell.Length() > 0 {
		cells = cell.NextAll().Filter("td")
	}

	var token string
	cells.EachWithBreak(func(_ int, c *goquery.Selection) bool {
		text := strings.TrimSpace(c.Text())
		if model.IsSizeToken(text) {
			token = text
			return false
		}
		return true
	})
	return token
}

// trailingLine returns the text after the link up to the end of its line,
// when that text is non-blank.
func trailingLine(s *goquery.Selection) (string, bool) {
	if len(s.Nodes) == 0 {
		return "", false
	}
	next := s.Nodes[0].NextSibling
	if next == nil || next.Type != html.TextNode {
		return "", false
	}

	line, _, _ := strings.Cut(next.Data, "\n")
	if strings.TrimSpace(line) == "" {
		return "", false
	}
	return line, true
}

func sizeFromLine(line string) string {
	fields := strings.Fields(line)
	for i := len(fields) - 1; i >= 0; i-- {
		if model.IsSizeToken(fields[i]) {
			return fields[i]
		}
	}
	return ""
}

func sizeFromText(page, name string) string {
	i := strings.Index(page, name)
	if i < 0 {
		return ""
	}

	lines := strings.SplitN(page[i+len(name):], "\n", fallbackLines+1)
	if len(lines) > fallbackLines {
		lines = lines[:fallbackLines]
	}
	for _, line := range lines {
		if m := fallbackSizePattern.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}
