package feedback

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/dargad/sru-lint/internal/span"
)

func item(path string, line int, rule Code, sev Severity) Item {
	return Item{
		Message:  "m",
		Rule:     rule,
		Severity: sev,
		Span: span.Span{
			Path:      path,
			StartLine: line,
			StartCol:  1,
			EndLine:   line,
			EndCol:    2,
		},
	}
}

func TestSeverityOrder(t *testing.T) {
	if !Error.AtLeast(Warning) || !Warning.AtLeast(Info) || !Info.AtLeast(Info) {
		t.Error("severity order violated")
	}
	if Info.AtLeast(Warning) || Warning.AtLeast(Error) {
		t.Error("lower severity must not reach higher threshold")
	}
	if Severity("critical").AtLeast(Info) {
		t.Error("unknown severity must rank below info")
	}
}

func TestParseSeverity(t *testing.T) {
	for _, v := range []string{"info", "warning", "error"} {
		if _, err := ParseSeverity(v); err != nil {
			t.Errorf("ParseSeverity(%q): %v", v, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("expected error for unknown severity")
	}
}

func TestMeetsThreshold_Monotonicity(t *testing.T) {
	cases := []struct {
		items []Item
		want  map[Severity]bool
	}{
		{
			items: nil,
			want:  map[Severity]bool{Info: false, Warning: false, Error: false},
		},
		{
			items: []Item{item("f", 1, ChangelogInvalidDistribution, Info)},
			want:  map[Severity]bool{Info: true, Warning: false, Error: false},
		},
		{
			items: []Item{item("f", 1, ChangelogInvalidDistribution, Warning)},
			want:  map[Severity]bool{Info: true, Warning: true, Error: false},
		},
		{
			items: []Item{
				item("f", 1, ChangelogInvalidDistribution, Info),
				item("f", 2, ChangelogVersionOrder, Error),
			},
			want: map[Severity]bool{Info: true, Warning: true, Error: true},
		},
	}
	for _, c := range cases {
		for _, threshold := range []Severity{Info, Warning, Error} {
			if got := MeetsThreshold(c.items, threshold); got != c.want[threshold] {
				t.Errorf("MeetsThreshold(%d items, %s) = %v, want %v",
					len(c.items), threshold, got, c.want[threshold])
			}
		}
	}
}

func TestSort_ByPathThenPosition(t *testing.T) {
	items := []Item{
		item("b", 2, ChangelogVersionOrder, Error),
		item("a", 5, ChangelogVersionOrder, Error),
		item("b", 1, ChangelogVersionOrder, Error),
	}
	Sort(items)
	if items[0].Span.Path != "a" {
		t.Errorf("expected path a first, got %s", items[0].Span.Path)
	}
	if items[1].Span.Path != "b" || items[1].Span.StartLine != 1 {
		t.Errorf("expected b:1 second, got %s:%d", items[1].Span.Path, items[1].Span.StartLine)
	}
}

func TestSort_StableOnTies(t *testing.T) {
	first := item("f", 1, ChangelogInvalidDistribution, Error)
	second := item("f", 1, ChangelogVersionOrder, Warning)
	items := []Item{first, second}
	Sort(items)
	if items[0].Rule != ChangelogInvalidDistribution {
		t.Error("stable sort must keep discovery order on ties")
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	a := []Item{item("x", 3, ChangelogInvalidDistribution, Error)}
	b := []Item{item("x", 1, PatchDEP3MissingDescription, Warning)}

	once := Aggregate(a, b)
	twice := Aggregate(a, b)
	if !reflect.DeepEqual(once, twice) {
		t.Error("aggregation must be deterministic")
	}
	if once[0].Rule != PatchDEP3MissingDescription {
		t.Errorf("expected position order, got %s first", once[0].Rule)
	}
}

func TestSummarize(t *testing.T) {
	items := []Item{
		item("f", 1, ChangelogInvalidDistribution, Error),
		item("f", 2, PatchDEP3MissingDescription, Warning),
		item("f", 3, ChangelogVersionOrder, Error),
	}
	counts := Summarize(items)
	if counts["error"] != 2 || counts["warning"] != 1 {
		t.Errorf("unexpected summary: %v", counts)
	}
}

func TestReport_RoundTrip(t *testing.T) {
	replacement := "jammy"
	items := []Item{
		{
			Message:  "invalid distribution \"invalid-dist\"",
			Rule:     ChangelogInvalidDistribution,
			Severity: Error,
			Span: span.Span{
				Path:        "debian/changelog",
				StartLine:   1,
				StartCol:    1,
				EndLine:     1,
				EndCol:      54,
				StartOffset: 0,
				EndOffset:   53,
				Content: []span.Line{
					{Text: "pkg (1.0-1ubuntu1) invalid-dist; urgency=medium", Number: 1, Origin: span.Added},
					{Text: "", Number: 2, Origin: span.Context},
				},
			},
			Hint:   "use a current Ubuntu series",
			DocURL: "https://example.com/releases",
			Tags:   []string{"changelog"},
			FixIts: []FixIt{{Description: "replace distribution", Replacement: &replacement}},
		},
	}

	var buf bytes.Buffer
	if err := NewReport("srulint", "1.2.3", items).Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := DecodeReport(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Tool != "srulint" || decoded.Version != "1.2.3" {
		t.Errorf("tool identity lost: %s %s", decoded.Tool, decoded.Version)
	}
	if !reflect.DeepEqual(decoded.Items, items) {
		t.Errorf("items did not round-trip:\nhave %+v\nwant %+v", decoded.Items, items)
	}
}

func TestReport_ToleratesUnknownValues(t *testing.T) {
	payload := `{
  "tool_name": "srulint",
  "tool_version": "9.9",
  "summary": {"critical": 1},
  "items": [
    {
      "message": "from the future",
      "rule_id": "FUTURE999",
      "severity": "critical",
      "span": {"path": "f", "start_line": 1, "start_col": 1, "end_line": 1, "end_col": 1, "start_offset": 0, "end_offset": 0, "content": null},
      "tags": null,
      "fixits": null
    }
  ]
}`
	decoded, err := DecodeReport(bytes.NewReader([]byte(payload)))
	if err != nil {
		t.Fatalf("unknown values must not fail deserialization: %v", err)
	}
	it := decoded.Items[0]
	if string(it.Severity) != "critical" {
		t.Errorf("severity must stay opaque, got %q", it.Severity)
	}
	if string(it.Rule) != "FUTURE999" {
		t.Errorf("rule must stay opaque, got %q", it.Rule)
	}
	if it.Rule.Known() {
		t.Error("future rule must not be in the closed registry")
	}
}

func TestItem_String(t *testing.T) {
	it := item("debian/changelog", 4, ChangelogVersionOrder, Error)
	it.Message = "out of order"
	want := "debian/changelog:4:1: error: [CHANGELOG003] out of order"
	if got := it.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestInternalTag(t *testing.T) {
	it := item("f", 1, InternalPluginPanic, Error)
	if it.Internal() {
		t.Error("item without tag must not be internal")
	}
	it.Tags = []string{TagInternal}
	if !it.Internal() {
		t.Error("tagged item must be internal")
	}
}
