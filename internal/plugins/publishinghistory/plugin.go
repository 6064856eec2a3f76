// Package publishinghistory checks whether the version a changelog
// entry introduces has already been published in the Ubuntu archive.
package publishinghistory

import (
	"fmt"
	"strings"

	"github.com/dargad/sru-lint/internal/debian"
	"github.com/dargad/sru-lint/internal/feedback"
	"github.com/dargad/sru-lint/internal/patch"
	"github.com/dargad/sru-lint/internal/plugin"
	"github.com/dargad/sru-lint/internal/span"
)

const docChangelogFormat = "https://documentation.ubuntu.com/project/contributors/patching/make-changes-to-a-package/#updating-the-changelog"

func init() {
	plugin.Register("publishing-history", New)
}

// Plugin checks the archive publishing history.
type Plugin struct {
	ctx *plugin.Context
}

// New implements plugin.Factory.
func New(ctx *plugin.Context) plugin.Plugin {
	return &Plugin{ctx: ctx}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string { return "publishing-history" }

// FilePatterns implements plugin.Plugin.
func (p *Plugin) FilePatterns() []string {
	return []string{p.ctx.ChangelogPattern()}
}

// ProcessFile implements plugin.Plugin.
func (p *Plugin) ProcessFile(acc *plugin.Accumulator, view *patch.FileView) {
	added := view.Added()
	if len(added) == 0 {
		return
	}

	var found bool
	for _, l := range added {
		h, ok := debian.ParseChangelogHeader(l.Text)
		if !ok {
			continue
		}
		found = true
		for _, dist := range h.Distributions {
			p.checkPublication(acc, view, l, h, dist)
		}
	}

	if !found && strings.TrimSpace(view.AddedText()) != "" {
		acc.Add(feedback.Item{
			Message: "no parseable changelog entry header in added lines",
			Rule:    feedback.HistoryUnparseable,
			Span:    view.Span,
			DocURL:  docChangelogFormat,
		})
	}
}

func (p *Plugin) checkPublication(acc *plugin.Accumulator, view *patch.FileView, l span.Line, h debian.ChangelogHeader, dist string) {
	versions, err := p.ctx.Launchpad.PublishedVersions(h.Source, dist)
	if err != nil {
		p.ctx.Log.Printf("publishing history lookup for %s/%s failed: %v", h.Source, dist, err)
		return
	}
	for _, v := range versions {
		if debian.CompareVersions(v, h.Version) == 0 {
			acc.Add(feedback.Item{
				Message: fmt.Sprintf("version %s of %s is already published in %s", h.Version, h.Source, dist),
				Rule:    feedback.HistoryAlreadyPublished,
				Span:    view.LineSpan(l),
				Hint:    "bump the version number before uploading",
			})
			return
		}
	}
}
