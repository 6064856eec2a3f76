// Package patchformat checks patches added under debian/patches for
// compliance with the DEP-3 patch tagging guidelines.
package patchformat

import (
	"path"

	"github.com/dargad/sru-lint/internal/debian"
	"github.com/dargad/sru-lint/internal/feedback"
	"github.com/dargad/sru-lint/internal/patch"
	"github.com/dargad/sru-lint/internal/plugin"
	"github.com/dargad/sru-lint/internal/span"
)

const docDEP3 = "https://dep-team.pages.debian.net/deps/dep3/"

func init() {
	plugin.Register("patch-format", New)
}

// Plugin checks DEP-3 headers of added patch files.
type Plugin struct {
	ctx *plugin.Context
}

// New implements plugin.Factory.
func New(ctx *plugin.Context) plugin.Plugin {
	return &Plugin{ctx: ctx}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string { return "patch-format" }

// FilePatterns implements plugin.Plugin.
func (p *Plugin) FilePatterns() []string {
	return []string{"debian/patches/*"}
}

// ProcessFile implements plugin.Plugin.
func (p *Plugin) ProcessFile(acc *plugin.Accumulator, view *patch.FileView) {
	// The series file lists patches; it has no DEP-3 header itself.
	if path.Base(view.Path) == "series" || view.Binary {
		return
	}

	added := view.Added()
	if len(added) == 0 {
		return
	}

	res := debian.CheckDEP3(view.AddedText())

	if !res.HasDescription {
		acc.Add(feedback.Item{
			Message: "patch has no Description or Subject field",
			Rule:    feedback.PatchDEP3MissingDescription,
			Span:    headerSpan(view, added[0]),
			Hint:    "add a Description: line summarizing what the patch does",
			DocURL:  docDEP3,
		})
	} else if res.DescriptionEmpty {
		acc.Add(feedback.Item{
			Message: "the Description/Subject field must contain a short description on its first line",
			Rule:    feedback.PatchDEP3EmptyDescription,
			Span:    fieldSpan(view, added[0], "Description:", "Subject:"),
			DocURL:  docDEP3,
		})
	}

	if !res.HasOrigin && !res.HasAuthor {
		acc.Add(feedback.Item{
			Message: "either an Origin field or an Author/From field must be provided",
			Rule:    feedback.PatchDEP3MissingOrigin,
			Span:    headerSpan(view, added[0]),
			DocURL:  docDEP3,
		})
	}

	if res.BadLastUpdate {
		acc.Add(feedback.Item{
			Message: "Last-Update field must be a valid ISO date (YYYY-MM-DD)",
			Rule:    feedback.PatchDEP3InvalidLastUpdate,
			Span:    fieldSpan(view, added[0], "Last-Update:"),
			DocURL:  docDEP3,
		})
	}

	if res.BadForwarded {
		acc.Add(feedback.Item{
			Message: `Forwarded field should be either "no", "not-needed" or a valid URL`,
			Rule:    feedback.PatchDEP3InvalidForwarded,
			Span:    fieldSpan(view, added[0], "Forwarded:"),
			DocURL:  docDEP3,
		})
	}
}

// headerSpan points at the first added line of the patch file, where
// the DEP-3 header belongs.
func headerSpan(view *patch.FileView, first span.Line) span.Span {
	return view.LineSpan(first)
}

// fieldSpan narrows to the named field if it appears, falling back to
// the top of the header.
func fieldSpan(view *patch.FileView, first span.Line, fields ...string) span.Span {
	for _, f := range fields {
		if sp, ok := view.Find(f); ok {
			return sp
		}
	}
	return headerSpan(view, first)
}
