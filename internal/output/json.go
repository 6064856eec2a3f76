package output

import (
	"io"

	"github.com/dargad/sru-lint/internal/feedback"
)

// JSONFormatter outputs the full report as a JSON object with tool
// identity, per-severity summary and the ordered items. The encoding
// round-trips every item field, including span content snapshots.
type JSONFormatter struct {
	Tool    string
	Version string
}

// Format writes the report as pretty-printed JSON. An empty item list
// produces an empty items array, never null.
func (f *JSONFormatter) Format(w io.Writer, items []feedback.Item) error {
	return feedback.NewReport(f.Tool, f.Version, items).Encode(w)
}
