// Package debian holds the Debian packaging domain helpers the plugins
// share: changelog header parsing, dpkg version ordering, DEP-3 patch
// header checking and Launchpad bug reference extraction.
package debian

import (
	"regexp"
	"strconv"
	"strings"
)

// UnreleasedDistribution is the placeholder suite for entries not yet
// uploaded anywhere.
const UnreleasedDistribution = "UNRELEASED"

// ChangelogHeader is the first line of a debian/changelog entry:
//
//	package (version) distribution; urgency=medium
type ChangelogHeader struct {
	Source           string
	Version          string
	Distributions    []string
	RawDistributions string
}

var headerRE = regexp.MustCompile(`^(\S+) \(([^()\s]+)\) ([^;]+);`)

// ParseChangelogHeader parses one line as a changelog entry header.
func ParseChangelogHeader(line string) (ChangelogHeader, bool) {
	m := headerRE.FindStringSubmatch(line)
	if m == nil {
		return ChangelogHeader{}, false
	}
	raw := strings.TrimSpace(m[3])
	return ChangelogHeader{
		Source:           m[1],
		Version:          m[2],
		Distributions:    ParseDistributions(raw),
		RawDistributions: raw,
	}, true
}

// ParseDistributions tokenizes the distributions field. The field may
// hold several suites separated by whitespace or commas, e.g.
// "jammy jammy-proposed". The UNRELEASED placeholder is dropped.
func ParseDistributions(value string) []string {
	var out []string
	for _, tok := range strings.FieldsFunc(value, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	}) {
		if strings.EqualFold(tok, UnreleasedDistribution) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// BaseSeries strips pocket suffixes from a suite name, so
// "jammy-proposed" becomes "jammy".
func BaseSeries(suite string) string {
	if idx := strings.IndexByte(suite, '-'); idx > 0 {
		return suite[:idx]
	}
	return suite
}

var lpBugRE = regexp.MustCompile(`LP:\s*#(\d+)`)

// ExtractLPBugs returns the Launchpad bug numbers referenced as
// "LP: #NNNNNN" in text, in order of appearance without duplicates.
func ExtractLPBugs(text string) []int {
	var bugs []int
	seen := make(map[int]bool)
	for _, m := range lpBugRE.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || seen[n] {
			continue
		}
		seen[n] = true
		bugs = append(bugs, n)
	}
	return bugs
}
