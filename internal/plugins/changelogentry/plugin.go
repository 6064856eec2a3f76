// Package changelogentry validates the debian/changelog entry added by
// a patch: distribution names, version ordering and Launchpad bug
// targeting.
package changelogentry

import (
	"fmt"

	"github.com/dargad/sru-lint/internal/debian"
	"github.com/dargad/sru-lint/internal/feedback"
	"github.com/dargad/sru-lint/internal/patch"
	"github.com/dargad/sru-lint/internal/plugin"
	"github.com/dargad/sru-lint/internal/span"
)

const (
	docListOfReleases = "https://documentation.ubuntu.com/project/release-team/list-of-releases/#list-of-releases"
	docVersionFormat  = "https://documentation.ubuntu.com/project/contributors/patching/commit-changes/#version-string-format"
)

func init() {
	plugin.Register("changelog-entry", New)
}

// Plugin checks the changelog entry.
type Plugin struct {
	ctx *plugin.Context
}

// New implements plugin.Factory.
func New(ctx *plugin.Context) plugin.Plugin {
	return &Plugin{ctx: ctx}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string { return "changelog-entry" }

// FilePatterns implements plugin.Plugin.
func (p *Plugin) FilePatterns() []string {
	return []string{p.ctx.ChangelogPattern()}
}

type locatedHeader struct {
	hdr  debian.ChangelogHeader
	line span.Line
}

// ProcessFile implements plugin.Plugin.
func (p *Plugin) ProcessFile(acc *plugin.Accumulator, view *patch.FileView) {
	headers := collectHeaders(view)

	for _, h := range headers {
		p.checkDistributions(acc, view, h)
	}
	p.checkVersionOrder(acc, view, headers)
	p.checkBugTargets(acc, view, headers)
}

func collectHeaders(view *patch.FileView) []locatedHeader {
	var headers []locatedHeader
	for _, l := range view.Added() {
		if h, ok := debian.ParseChangelogHeader(l.Text); ok {
			headers = append(headers, locatedHeader{hdr: h, line: l})
		}
	}
	return headers
}

func (p *Plugin) checkDistributions(acc *plugin.Accumulator, view *patch.FileView, h locatedHeader) {
	for _, dist := range h.hdr.Distributions {
		if p.ctx.Launchpad.IsValidDistribution(dist) {
			continue
		}
		acc.Add(feedback.Item{
			Message: fmt.Sprintf("invalid distribution %q", dist),
			Rule:    feedback.ChangelogInvalidDistribution,
			Span:    view.LineSpan(h.line),
			Hint:    "use a current Ubuntu series, optionally with a pocket such as -proposed",
			DocURL:  docListOfReleases,
		})
	}
}

// checkVersionOrder requires consecutive changelog entries to carry
// strictly descending versions, newest first.
func (p *Plugin) checkVersionOrder(acc *plugin.Accumulator, view *patch.FileView, headers []locatedHeader) {
	for i := 0; i+1 < len(headers); i++ {
		prev, curr := headers[i], headers[i+1]
		if debian.CompareVersions(prev.hdr.Version, curr.hdr.Version) > 0 {
			continue
		}
		acc.Add(feedback.Item{
			Message: fmt.Sprintf("changelog version order error: %q is not greater than %q",
				prev.hdr.Version, curr.hdr.Version),
			Rule:   feedback.ChangelogVersionOrder,
			Span:   view.LineSpan(prev.line),
			DocURL: docVersionFormat,
		})
	}
}

// checkBugTargets verifies that every LP bug referenced by the new
// entry has a task for the package and distribution being uploaded.
func (p *Plugin) checkBugTargets(acc *plugin.Accumulator, view *patch.FileView, headers []locatedHeader) {
	if len(headers) == 0 {
		return
	}
	top := headers[0].hdr

	for _, bug := range debian.ExtractLPBugs(view.AddedText()) {
		for _, dist := range top.Distributions {
			targeted, err := p.ctx.Launchpad.BugTargeted(bug, top.Source, dist)
			if err != nil {
				p.ctx.Log.Printf("bug LP: #%d lookup failed: %v", bug, err)
				continue
			}
			if targeted {
				continue
			}
			sp, found := view.Find(fmt.Sprintf("LP: #%d", bug))
			if !found {
				sp = view.LineSpan(headers[0].line)
			}
			acc.Add(feedback.Item{
				Message: fmt.Sprintf("bug LP: #%d is not targeted at %s/%s", bug, top.Source, dist),
				Rule:    feedback.ChangelogBugNotTargeted,
				Span:    sp,
			})
		}
	}
}
