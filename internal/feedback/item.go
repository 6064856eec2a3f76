package feedback

import (
	"fmt"

	"github.com/dargad/sru-lint/internal/span"
)

// TagInternal marks runner diagnostics so automation can tell "plugin
// crashed" apart from rule findings.
const TagInternal = "internal"

// FixIt is a suggested edit. A nil Replacement means the suggestion is
// not machine-applicable.
type FixIt struct {
	Description string     `json:"description"`
	Span        *span.Span `json:"span,omitempty"`
	Replacement *string    `json:"replacement,omitempty"`
}

// Item is one finding. Once appended to an aggregation it is immutable.
type Item struct {
	Message  string    `json:"message"`
	Rule     Code      `json:"rule_id"`
	Severity Severity  `json:"severity"`
	Span     span.Span `json:"span"`
	Hint     string    `json:"hint,omitempty"`
	DocURL   string    `json:"doc_url,omitempty"`
	Tags     []string  `json:"tags"`
	FixIts   []FixIt   `json:"fixits"`
}

// String renders the item in the usual file:line:col form.
func (it Item) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: [%s] %s",
		it.Span.Path, it.Span.StartLine, it.Span.StartCol,
		it.Severity, it.Rule, it.Message)
}

// Internal reports whether the item is a runner diagnostic rather than
// a rule finding.
func (it Item) Internal() bool {
	for _, t := range it.Tags {
		if t == TagInternal {
			return true
		}
	}
	return false
}
