package output

import (
	"io"

	"github.com/dargad/sru-lint/internal/feedback"
)

// Formatter defines the interface for outputting feedback items.
type Formatter interface {
	Format(w io.Writer, items []feedback.Item) error
}
