package patchformat

import (
	"testing"

	"github.com/dargad/sru-lint/internal/feedback"
	"github.com/dargad/sru-lint/internal/patch"
	"github.com/dargad/sru-lint/internal/plugin"
	"github.com/dargad/sru-lint/internal/span"
)

func viewOf(path string, texts ...string) *patch.FileView {
	var lines []span.Line
	for i, text := range texts {
		lines = append(lines, span.Line{Text: text, Number: i + 1, Origin: span.Added})
	}
	return patch.NewView(patch.File{Path: path, Hunks: []patch.Hunk{{Lines: lines}}})
}

func process(t *testing.T, view *patch.FileView) []feedback.Item {
	t.Helper()
	acc := &plugin.Accumulator{}
	New(&plugin.Context{}).ProcessFile(acc, view)
	return acc.Items()
}

func rules(items []feedback.Item) map[feedback.Code]bool {
	out := make(map[feedback.Code]bool)
	for _, it := range items {
		out[it.Rule] = true
	}
	return out
}

func TestCompliantPatch(t *testing.T) {
	items := process(t, viewOf("debian/patches/fix-segv.patch",
		"Description: guard against empty input",
		"Author: Jane Doe <jane@example.com>",
		"Last-Update: 2025-05-05",
		"---",
		"--- a/src/main.c",
		"+++ b/src/main.c",
	))
	if len(items) != 0 {
		t.Errorf("expected no findings, got %v", items)
	}
}

func TestMissingDescription(t *testing.T) {
	items := process(t, viewOf("debian/patches/fix-segv.patch",
		"Author: Jane Doe <jane@example.com>",
		"---",
	))
	if len(items) != 1 {
		t.Fatalf("expected 1 finding, got %v", items)
	}
	it := items[0]
	if it.Rule != feedback.PatchDEP3MissingDescription {
		t.Errorf("rule = %s", it.Rule)
	}
	if it.Severity != feedback.Warning {
		t.Errorf("severity = %s", it.Severity)
	}
	if it.Span.Path != "debian/patches/fix-segv.patch" || it.Span.StartLine != 1 {
		t.Errorf("span must point at the header: %+v", it.Span)
	}
}

func TestEmptyDescription(t *testing.T) {
	items := process(t, viewOf("debian/patches/p.patch",
		"Description:",
		"Author: Jane Doe",
	))
	got := rules(items)
	if !got[feedback.PatchDEP3EmptyDescription] {
		t.Errorf("expected empty description finding, got %v", items)
	}
	if got[feedback.PatchDEP3MissingDescription] {
		t.Error("present-but-empty must not also be reported missing")
	}
}

func TestMissingOriginAndAuthor(t *testing.T) {
	items := process(t, viewOf("debian/patches/p.patch",
		"Description: something",
	))
	if !rules(items)[feedback.PatchDEP3MissingOrigin] {
		t.Errorf("expected missing origin finding, got %v", items)
	}
}

func TestInvalidOptionalFields(t *testing.T) {
	items := process(t, viewOf("debian/patches/p.patch",
		"Description: something",
		"Origin: upstream",
		"Last-Update: yesterday",
		"Forwarded: maybe",
	))
	got := rules(items)
	if !got[feedback.PatchDEP3InvalidLastUpdate] {
		t.Errorf("expected invalid Last-Update finding, got %v", items)
	}
	if !got[feedback.PatchDEP3InvalidForwarded] {
		t.Errorf("expected invalid Forwarded finding, got %v", items)
	}
}

func TestFieldSpanNarrowsToField(t *testing.T) {
	items := process(t, viewOf("debian/patches/p.patch",
		"Description: something",
		"Origin: upstream",
		"Last-Update: yesterday",
	))
	for _, it := range items {
		if it.Rule == feedback.PatchDEP3InvalidLastUpdate && it.Span.StartLine != 3 {
			t.Errorf("span must narrow to the Last-Update line: %+v", it.Span)
		}
	}
}

func TestSeriesFileSkipped(t *testing.T) {
	items := process(t, viewOf("debian/patches/series", "fix-segv.patch"))
	if len(items) != 0 {
		t.Errorf("series file must be exempt, got %v", items)
	}
}

func TestBinaryPatchSkipped(t *testing.T) {
	view := patch.NewView(patch.File{Path: "debian/patches/blob.patch", Binary: true})
	if items := process(t, view); len(items) != 0 {
		t.Errorf("binary file must be skipped, got %v", items)
	}
}

func TestNoAddedLinesSkipped(t *testing.T) {
	view := patch.NewView(patch.File{
		Path: "debian/patches/p.patch",
		Hunks: []patch.Hunk{{Lines: []span.Line{
			{Text: "Description: old", Number: 1, Origin: span.Removed},
		}}},
	})
	if items := process(t, view); len(items) != 0 {
		t.Errorf("removal-only change must be skipped, got %v", items)
	}
}
