package debian

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// DEP3Result is the outcome of checking a patch header against the
// DEP-3 patch tagging guidelines. Description/Subject are aliases, as
// are Author/From.
type DEP3Result struct {
	HasDescription   bool
	DescriptionEmpty bool
	HasOrigin        bool
	HasAuthor        bool
	BadLastUpdate    bool
	BadForwarded     bool
}

// Compliant reports whether the header satisfies the mandatory DEP-3
// requirements: a non-empty Description or Subject, plus an Origin or
// an Author/From, with any optional fields that are present valid.
func (r DEP3Result) Compliant() bool {
	return r.HasDescription && !r.DescriptionEmpty &&
		(r.HasOrigin || r.HasAuthor) &&
		!r.BadLastUpdate && !r.BadForwarded
}

var dep3FieldRE = regexp.MustCompile(`^([\w.-]+)\s*:\s*(.*)$`)

// CheckDEP3 scans the DEP-3 header of a patch file. The header runs
// from the first line down to a line of exactly three dashes; a blank
// line starts the pseudo-header. Fields may be wrapped in a single
// leading "#" comment marker.
func CheckDEP3(text string) DEP3Result {
	var r DEP3Result

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	currentField := ""
	fieldHasContent := false

	for _, raw := range lines {
		if strings.TrimSpace(raw) == "---" {
			break
		}
		line := stripCommentPrefix(raw)

		if strings.TrimSpace(line) == "" {
			currentField = ""
			fieldHasContent = false
			continue
		}

		if m := dep3FieldRE.FindStringSubmatch(line); m != nil {
			currentField = strings.ToLower(m[1])
			value := strings.TrimSpace(m[2])
			fieldHasContent = value != ""

			switch currentField {
			case "description", "subject":
				r.HasDescription = true
				if !fieldHasContent {
					r.DescriptionEmpty = true
				} else {
					r.DescriptionEmpty = false
				}
			case "origin":
				r.HasOrigin = true
			case "author", "from":
				r.HasAuthor = true
			case "last-update":
				if value != "" && !validISODate(value) {
					r.BadLastUpdate = true
				}
			case "forwarded":
				if value != "" && !validForwarded(value) {
					r.BadForwarded = true
				}
			}
			continue
		}

		// Continuation lines extend the previous field's value. Only
		// the short description (the first line) counts for emptiness,
		// but a wrapped Description with content on the next line is
		// still usable.
		if currentField != "" && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) {
			if (currentField == "description" || currentField == "subject") &&
				!fieldHasContent && strings.TrimSpace(line) != "" {
				r.DescriptionEmpty = false
				fieldHasContent = true
			}
			continue
		}

		// Free-form text resets field tracking without affecting
		// compliance.
		currentField = ""
		fieldHasContent = false
	}

	return r
}

// stripCommentPrefix removes one leading "#" and a single following
// space, so headers kept inside shell comments still parse.
func stripCommentPrefix(line string) string {
	stripped := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(stripped, "#") {
		return line
	}
	stripped = stripped[1:]
	return strings.TrimPrefix(stripped, " ")
}

func validISODate(value string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	return err == nil
}

// validForwarded accepts the DEP-3 keywords "no" and "not-needed", or
// anything that plausibly parses as a URL.
func validForwarded(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "no" || v == "not-needed" {
		return true
	}
	u, err := url.Parse(v)
	return err == nil && u.Scheme != "" && u.Host != ""
}
