package debian

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a Debian package version split into its three parts.
type Version struct {
	Epoch    int
	Upstream string
	Revision string
}

// ParseVersion splits a version string on the first colon (epoch) and
// the last hyphen (Debian revision).
func ParseVersion(s string) (Version, error) {
	v := Version{}
	if s == "" {
		return v, fmt.Errorf("empty version string")
	}
	rest := s
	if idx := strings.IndexByte(rest, ':'); idx >= 0 {
		e, err := strconv.Atoi(rest[:idx])
		if err != nil || e < 0 {
			return v, fmt.Errorf("invalid epoch in %q", s)
		}
		v.Epoch = e
		rest = rest[idx+1:]
	}
	if idx := strings.LastIndexByte(rest, '-'); idx >= 0 {
		v.Revision = rest[idx+1:]
		rest = rest[:idx]
	}
	if rest == "" {
		return v, fmt.Errorf("missing upstream version in %q", s)
	}
	v.Upstream = rest
	return v, nil
}

// IsUbuntu reports whether the revision carries an ubuntu marker
// (e.g. "1.0-1ubuntu1").
func (v Version) IsUbuntu() bool {
	return strings.Contains(v.Revision, "ubuntu")
}

// CompareVersions orders two Debian version strings per dpkg rules:
// epoch numerically, then upstream and revision with verrevcmp.
// Returns <0, 0 or >0. Unparseable versions compare as plain strings.
func CompareVersions(a, b string) int {
	va, errA := ParseVersion(a)
	vb, errB := ParseVersion(b)
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	if va.Epoch != vb.Epoch {
		return va.Epoch - vb.Epoch
	}
	if c := verrevcmp(va.Upstream, vb.Upstream); c != 0 {
		return c
	}
	return verrevcmp(va.Revision, vb.Revision)
}

// charOrder implements dpkg's character ordering: the tilde sorts
// before anything, including the end of the string; digits weigh
// nothing here (they are compared numerically by the caller); letters
// sort before all other characters.
func charOrder(c byte) int {
	switch {
	case c == '~':
		return -1
	case isDigit(c):
		return 0
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return int(c)
	default:
		return int(c) + 256
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// verrevcmp walks both strings alternating between non-digit and digit
// runs, exactly like dpkg's comparator.
func verrevcmp(a, b string) int {
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		for (i < len(a) && !isDigit(a[i])) || (j < len(b) && !isDigit(b[j])) {
			ac, bc := 0, 0
			if i < len(a) {
				ac = charOrder(a[i])
			}
			if j < len(b) {
				bc = charOrder(b[j])
			}
			if ac != bc {
				return ac - bc
			}
			i++
			j++
		}
		for i < len(a) && a[i] == '0' {
			i++
		}
		for j < len(b) && b[j] == '0' {
			j++
		}
		firstDiff := 0
		for i < len(a) && j < len(b) && isDigit(a[i]) && isDigit(b[j]) {
			if firstDiff == 0 {
				firstDiff = int(a[i]) - int(b[j])
			}
			i++
			j++
		}
		if i < len(a) && isDigit(a[i]) {
			return 1
		}
		if j < len(b) && isDigit(b[j]) {
			return -1
		}
		if firstDiff != 0 {
			return firstDiff
		}
	}
	return 0
}
