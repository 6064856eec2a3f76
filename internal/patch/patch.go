// Package patch turns a unified diff into an addressable document
// model: per-file change-sets whose lines carry origin flags and the
// line numbers plugins expect (post-apply for added and context lines,
// pre-apply for removed lines).
package patch

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/dargad/sru-lint/internal/span"
)

// ParseError is the fatal failure mode of Parse: the input is not a
// usable unified diff. It is distinct from a valid patch producing
// zero findings.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing patch: %s: %v", e.Reason, e.Err)
	}
	return "parsing patch: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// Hunk is a contiguous run of classified line records.
type Hunk struct {
	OrigStart int
	OrigLines int
	NewStart  int
	NewLines  int
	Section   string
	Lines     []span.Line
}

// File is one per-file change-set of the document. Path is the
// post-rename path; OrigPath keeps the pre-rename identity for renamed
// or copied entries. Binary files are present but opaque: addressable
// by path, with no line content.
type File struct {
	OrigPath string
	Path     string
	Binary   bool
	Hunks    []Hunk
}

// Document is the parsed form of a whole diff. It is constructed once
// per run and read-only afterwards.
type Document struct {
	Files []File
}

// Parse reads a unified diff and builds a Document. A diff with zero
// file entries is a *ParseError, never an empty document, so callers
// can tell "no files changed" apart from "could not be parsed".
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Reason: "reading input", Err: err}
	}

	data = stripTrailer(data)

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Reason: "no file entries found"}
	}

	fds, err := diff.NewMultiFileDiffReader(bytes.NewReader(data)).ReadAllFiles()
	if err != nil {
		return nil, &ParseError{Reason: "malformed unified diff", Err: err}
	}
	if len(fds) == 0 {
		return nil, &ParseError{Reason: "no file entries found"}
	}

	doc := &Document{Files: make([]File, 0, len(fds))}
	for _, fd := range fds {
		doc.Files = append(doc.Files, buildFile(fd))
	}
	return doc, nil
}

var hunkHeaderRE = regexp.MustCompile(`^@@ -\d+(?:,(\d+))? \+\d+(?:,(\d+))? @@`)

// stripTrailer truncates the patch at a mail signature separator
// ("-- " on its own line, as emitted by git format-patch) so trailing
// metadata is never parsed as diff content. Hunk bodies are consumed by
// their declared line counts first: a removed line whose text is "- "
// serializes as "-- " and must never be taken for the separator.
func stripTrailer(data []byte) []byte {
	offset := 0
	origLeft, newLeft := 0, 0

	for offset < len(data) {
		next := len(data)
		line := data[offset:]
		if nl := bytes.IndexByte(line, '\n'); nl >= 0 {
			line = line[:nl]
			next = offset + nl + 1
		}

		switch {
		case origLeft > 0 || newLeft > 0:
			switch {
			case len(line) > 0 && line[0] == '+':
				newLeft--
			case len(line) > 0 && line[0] == '-':
				origLeft--
			case len(line) > 0 && line[0] == '\\':
				// "\ No newline at end of file" consumes no count.
			default:
				origLeft--
				newLeft--
			}
		case bytes.Equal(line, []byte("-- ")):
			return data[:offset]
		default:
			if m := hunkHeaderRE.FindSubmatch(line); m != nil {
				origLeft, newLeft = hunkCount(m[1]), hunkCount(m[2])
			}
		}
		offset = next
	}
	return data
}

// hunkCount parses an optional hunk-header line count; an absent count
// means 1 in unified diff notation.
func hunkCount(m []byte) int {
	if len(m) == 0 {
		return 1
	}
	n, err := strconv.Atoi(string(m))
	if err != nil {
		return 1
	}
	return n
}

func buildFile(fd *diff.FileDiff) File {
	f := File{
		OrigPath: stripPathPrefix(fd.OrigName),
		Path:     stripPathPrefix(fd.NewName),
	}
	// Deleted files have no post-image name to address them by.
	if fd.NewName == "/dev/null" {
		f.Path = f.OrigPath
	}
	if len(fd.Hunks) == 0 && isBinary(fd.Extended) {
		f.Binary = true
		return f
	}
	for _, h := range fd.Hunks {
		f.Hunks = append(f.Hunks, buildHunk(h))
	}
	return f
}

func buildHunk(h *diff.Hunk) Hunk {
	out := Hunk{
		OrigStart: int(h.OrigStartLine),
		OrigLines: int(h.OrigLines),
		NewStart:  int(h.NewStartLine),
		NewLines:  int(h.NewLines),
		Section:   h.Section,
	}

	origLine := int(h.OrigStartLine)
	newLine := int(h.NewStartLine)

	for _, raw := range splitBody(h.Body) {
		switch {
		case strings.HasPrefix(raw, "+"):
			out.Lines = append(out.Lines, span.Line{
				Text:   raw[1:],
				Number: newLine,
				Origin: span.Added,
			})
			newLine++
		case strings.HasPrefix(raw, "-"):
			out.Lines = append(out.Lines, span.Line{
				Text:   raw[1:],
				Number: origLine,
				Origin: span.Removed,
			})
			origLine++
		case strings.HasPrefix(raw, `\`):
			// "\ No newline at end of file" is metadata, not content.
		default:
			text := raw
			if strings.HasPrefix(raw, " ") {
				text = raw[1:]
			}
			out.Lines = append(out.Lines, span.Line{
				Text:   text,
				Number: newLine,
				Origin: span.Context,
			})
			origLine++
			newLine++
		}
	}
	return out
}

func splitBody(body []byte) []string {
	if len(body) == 0 {
		return nil
	}
	lines := strings.Split(string(body), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func isBinary(extended []string) bool {
	for _, l := range extended {
		if strings.HasPrefix(l, "Binary files ") || l == "GIT binary patch" {
			return true
		}
	}
	return false
}

// stripPathPrefix removes the conventional a/ and b/ diff prefixes.
func stripPathPrefix(name string) string {
	if name == "/dev/null" {
		return name
	}
	if strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/") {
		return name[2:]
	}
	return name
}
