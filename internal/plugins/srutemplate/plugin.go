// Package srutemplate checks that the Launchpad bugs referenced by a
// changelog entry carry the SRU justification template.
package srutemplate

import (
	"fmt"

	"github.com/dargad/sru-lint/internal/debian"
	"github.com/dargad/sru-lint/internal/feedback"
	"github.com/dargad/sru-lint/internal/patch"
	"github.com/dargad/sru-lint/internal/plugin"
)

const (
	docMakeChanges = "https://documentation.ubuntu.com/project/contributors/patching/make-changes-to-a-package/"
	docSRUTemplate = "https://documentation.ubuntu.com/project/SRU/reference/bug-template/#reference-sru-bug-template"
)

func init() {
	plugin.Register("sru-template", New)
}

// Plugin checks referenced bugs for the SRU template.
type Plugin struct {
	ctx *plugin.Context
}

// New implements plugin.Factory.
func New(ctx *plugin.Context) plugin.Plugin {
	return &Plugin{ctx: ctx}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string { return "sru-template" }

// FilePatterns implements plugin.Plugin.
func (p *Plugin) FilePatterns() []string {
	return []string{p.ctx.ChangelogPattern()}
}

// ProcessFile implements plugin.Plugin.
func (p *Plugin) ProcessFile(acc *plugin.Accumulator, view *patch.FileView) {
	bugs := debian.ExtractLPBugs(view.AddedText())

	if len(bugs) == 0 {
		acc.Add(feedback.Item{
			Message: fmt.Sprintf("no Launchpad bugs referenced in %s", view.Path),
			Rule:    feedback.SRUNoBugsReferenced,
			Span:    view.Span,
			DocURL:  docMakeChanges,
		})
		return
	}

	for _, bug := range bugs {
		sp, found := view.Find(fmt.Sprintf("LP: #%d", bug))
		if !found {
			sp = view.Span
		}

		has, err := p.ctx.Launchpad.HasSRUTemplate(bug)
		if err != nil {
			acc.Add(feedback.Item{
				Message: fmt.Sprintf("error checking SRU template for bug LP: #%d: %v", bug, err),
				Rule:    feedback.SRULookupFailed,
				Span:    sp,
			})
			continue
		}
		if !has {
			acc.Add(feedback.Item{
				Message: fmt.Sprintf("SRU template not found for bug LP: #%d", bug),
				Rule:    feedback.SRUTemplateMissing,
				Span:    sp,
				DocURL:  docSRUTemplate,
			})
		}
	}
}
