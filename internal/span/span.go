package span

import "strings"

// Origin classifies a line record by its role in the diff.
type Origin string

// Line origins.
const (
	Added   Origin = "added"
	Removed Origin = "removed"
	Context Origin = "context"
)

// Line is one line of patch content with its position and origin.
// Added and context lines carry post-apply line numbers; removed lines
// carry pre-apply line numbers.
type Line struct {
	Text   string `json:"text"`
	Number int    `json:"line"`
	Origin Origin `json:"origin"`
}

// Span identifies a location within a named file of a patch. Lines are
// 1-based and inclusive on both ends; columns are 1-based with an
// exclusive end, so a span over all of line 5 with 12 characters is
// {StartLine: 5, StartCol: 1, EndLine: 5, EndCol: 13}. Spans are value
// types and never mutated after construction.
type Span struct {
	Path        string `json:"path"`
	StartLine   int    `json:"start_line"`
	StartCol    int    `json:"start_col"`
	EndLine     int    `json:"end_line"`
	EndCol      int    `json:"end_col"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
	Content     []Line `json:"content"`
}

// ForLine returns a span covering the whole of one line.
func ForLine(path string, l Line) Span {
	return Span{
		Path:      path,
		StartLine: l.Number,
		StartCol:  1,
		EndLine:   l.Number,
		EndCol:    len(l.Text) + 1,
		Content:   []Line{l},
	}
}

// Added returns only the added lines of the content snapshot.
func (s Span) Added() []Line {
	var out []Line
	for _, l := range s.Content {
		if l.Origin == Added {
			out = append(out, l)
		}
	}
	return out
}

// LineText returns the text of the content line with the given number.
func (s Span) LineText(number int) (string, bool) {
	for _, l := range s.Content {
		if l.Number == number {
			return l.Text, true
		}
	}
	return "", false
}

// IsEmpty reports whether the span carries no non-blank added content.
func (s Span) IsEmpty() bool {
	for _, l := range s.Content {
		if l.Origin == Added && strings.TrimSpace(l.Text) != "" {
			return false
		}
	}
	return true
}
