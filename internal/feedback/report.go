package feedback

import (
	"encoding/json"
	"io"
	"sort"
)

// Sort orders items by file path, then start position. The sort is
// stable so items at the same position keep their discovery order.
func Sort(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Span, items[j].Span
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.StartCol < b.StartCol
	})
}

// Aggregate merges per-plugin result batches into one deterministically
// ordered collection. Batches must be passed in a stable order (the
// runner passes them in plugin-name order) so ties break reproducibly.
func Aggregate(batches ...[]Item) []Item {
	var merged []Item
	for _, b := range batches {
		merged = append(merged, b...)
	}
	Sort(merged)
	return merged
}

// Summarize counts items per severity.
func Summarize(items []Item) map[string]int {
	counts := make(map[string]int)
	for _, it := range items {
		counts[string(it.Severity)]++
	}
	return counts
}

// MeetsThreshold reports whether any item's severity is at or above the
// threshold. This predicate is the sole input to the exit-code decision.
func MeetsThreshold(items []Item, threshold Severity) bool {
	for _, it := range items {
		if it.Severity.AtLeast(threshold) {
			return true
		}
	}
	return false
}

// Report is the serialized form of one run.
type Report struct {
	Tool    string         `json:"tool_name"`
	Version string         `json:"tool_version"`
	Summary map[string]int `json:"summary"`
	Items   []Item         `json:"items"`
}

// NewReport builds a Report over already-aggregated items.
func NewReport(tool, version string, items []Item) *Report {
	if items == nil {
		items = []Item{}
	}
	return &Report{
		Tool:    tool,
		Version: version,
		Summary: Summarize(items),
		Items:   items,
	}
}

// Encode writes the report as indented JSON.
func (r *Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// DecodeReport reads a report back from JSON. Unknown severity or rule
// values are kept as opaque strings rather than rejected.
func DecodeReport(rd io.Reader) (*Report, error) {
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, err
	}
	return &r, nil
}
