package patch

import (
	"strings"

	"github.com/dargad/sru-lint/internal/span"
)

// FileView is the per-file projection handed to a plugin: the file's
// path, its line records in document order, and a span covering the
// whole view. Views are built fresh for each plugin and never outlive
// the run.
type FileView struct {
	Path   string
	Binary bool
	Lines  []span.Line
	Span   span.Span
}

// NewView builds a read-only projection of one file entry.
func NewView(f File) *FileView {
	v := &FileView{Path: f.Path, Binary: f.Binary}
	for _, h := range f.Hunks {
		v.Lines = append(v.Lines, h.Lines...)
	}
	v.Span = viewSpan(f.Path, v.Lines)
	return v
}

// Views builds one projection per file in the document.
func (d *Document) Views() []*FileView {
	views := make([]*FileView, 0, len(d.Files))
	for _, f := range d.Files {
		views = append(views, NewView(f))
	}
	return views
}

// viewSpan covers the whole view using post-apply numbering of added
// and context lines. A contentless view (binary or mode-change only)
// collapses to position 1:1.
func viewSpan(path string, lines []span.Line) span.Span {
	s := span.Span{
		Path:      path,
		StartLine: 1,
		StartCol:  1,
		EndLine:   1,
		EndCol:    1,
		Content:   lines,
	}

	first := true
	offset := 0
	var last span.Line
	for _, l := range lines {
		if l.Origin == span.Removed {
			continue
		}
		if first {
			s.StartLine = l.Number
			first = false
		}
		s.EndLine = l.Number
		last = l
		offset += len(l.Text) + 1
	}
	if !first {
		s.EndCol = len(last.Text) + 1
		s.EndOffset = offset
	}
	return s
}

// Added returns the view's added lines.
func (v *FileView) Added() []span.Line {
	var out []span.Line
	for _, l := range v.Lines {
		if l.Origin == span.Added {
			out = append(out, l)
		}
	}
	return out
}

// AddedText joins the added lines into one newline-separated string.
func (v *FileView) AddedText() string {
	return joinLines(v.Added())
}

// TextWithContext joins added and context lines, the post-apply text of
// the touched region.
func (v *FileView) TextWithContext() string {
	var keep []span.Line
	for _, l := range v.Lines {
		if l.Origin == span.Added || l.Origin == span.Context {
			keep = append(keep, l)
		}
	}
	return joinLines(keep)
}

// Find locates the first added or context line containing substr and
// returns a span narrowed to that occurrence.
func (v *FileView) Find(substr string) (span.Span, bool) {
	for _, l := range v.Lines {
		if l.Origin == span.Removed {
			continue
		}
		if idx := strings.Index(l.Text, substr); idx >= 0 {
			return span.Span{
				Path:      v.Path,
				StartLine: l.Number,
				StartCol:  idx + 1,
				EndLine:   l.Number,
				EndCol:    idx + 1 + len(substr),
				Content:   []span.Line{l},
			}, true
		}
	}
	return span.Span{}, false
}

// LineSpan returns a span covering the whole of one view line.
func (v *FileView) LineSpan(l span.Line) span.Span {
	return span.ForLine(v.Path, l)
}

func joinLines(lines []span.Line) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}
