package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dargad/sru-lint/internal/feedback"
)

// TextFormatter outputs feedback in human-readable text format.
// When Color is true, the file location is printed in cyan, the rule
// code in yellow, and the severity tinted by level.
type TextFormatter struct {
	Color bool
}

// Format writes each item as a single line in the pattern:
//
//	file:line:col severity [rule] message
//
// followed by an indented hint line when the item carries one.
func (f *TextFormatter) Format(w io.Writer, items []feedback.Item) error {
	location := color.New(color.FgCyan).SprintfFunc()
	rule := color.New(color.FgYellow).SprintfFunc()
	if !f.Color {
		location = fmt.Sprintf
		rule = fmt.Sprintf
	}

	for _, it := range items {
		_, err := fmt.Fprintf(w, "%s %s %s %s\n",
			location("%s:%d:%d", it.Span.Path, it.Span.StartLine, it.Span.StartCol),
			f.severity(it.Severity),
			rule("[%s]", it.Rule),
			it.Message)
		if err != nil {
			return err
		}
		if it.Hint != "" {
			if _, err := fmt.Fprintf(w, "    hint: %s\n", it.Hint); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *TextFormatter) severity(s feedback.Severity) string {
	if !f.Color {
		return string(s)
	}
	switch s {
	case feedback.Error:
		return color.New(color.FgRed).Sprint(string(s))
	case feedback.Warning:
		return color.New(color.FgMagenta).Sprint(string(s))
	default:
		return color.New(color.FgBlue).Sprint(string(s))
	}
}
