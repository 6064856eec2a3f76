// Package updatemaintainer checks that a package picking up its first
// Ubuntu revision also updates the Maintainer field in debian/control,
// as update-maintainer(1) would.
package updatemaintainer

import (
	"strings"

	"github.com/dargad/sru-lint/internal/debian"
	"github.com/dargad/sru-lint/internal/feedback"
	"github.com/dargad/sru-lint/internal/patch"
	"github.com/dargad/sru-lint/internal/plugin"
	"github.com/dargad/sru-lint/internal/span"
)

const (
	docControlFile = "https://documentation.ubuntu.com/project/how-ubuntu-is-made/concepts/debian-directory/#the-control-file"

	maintainerField         = "Maintainer:"
	expectedMaintainer      = "Ubuntu Developers <ubuntu-devel-discuss@lists.ubuntu.com>"
	originalMaintainerField = "XSBC-Original-Maintainer:"
)

func init() {
	plugin.Register("update-maintainer", New)
}

// Plugin correlates the changelog and control files of one patch, so
// it keeps state between ProcessFile calls and reports in Finish.
type Plugin struct {
	ctx *plugin.Context

	expectControl bool
	controlOK     bool
	changelogSpan span.Span
}

// New implements plugin.Factory.
func New(ctx *plugin.Context) plugin.Plugin {
	return &Plugin{ctx: ctx}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string { return "update-maintainer" }

// FilePatterns implements plugin.Plugin.
func (p *Plugin) FilePatterns() []string {
	return []string{p.ctx.ChangelogPattern(), "debian/control"}
}

// ProcessFile implements plugin.Plugin.
func (p *Plugin) ProcessFile(acc *plugin.Accumulator, view *patch.FileView) {
	if strings.HasSuffix(view.Path, "control") {
		p.processControl(view)
		return
	}
	p.processChangelog(view)
}

// processChangelog decides whether a maintainer update is due: the new
// top entry carries an ubuntu revision while the previous one did not.
func (p *Plugin) processChangelog(view *patch.FileView) {
	var versions []debian.Version
	var top span.Line

	for _, l := range view.Added() {
		h, ok := debian.ParseChangelogHeader(l.Text)
		if !ok {
			continue
		}
		v, err := debian.ParseVersion(h.Version)
		if err != nil {
			p.ctx.Log.Printf("unparseable version %q in %s", h.Version, view.Path)
			continue
		}
		if len(versions) == 0 {
			top = l
		}
		versions = append(versions, v)
	}

	// Context lines may hold the previous entry's header.
	if len(versions) == 1 {
		for _, l := range view.Lines {
			if l.Origin != span.Context {
				continue
			}
			if h, ok := debian.ParseChangelogHeader(l.Text); ok {
				if v, err := debian.ParseVersion(h.Version); err == nil {
					versions = append(versions, v)
					break
				}
			}
		}
	}

	if len(versions) >= 2 && versions[0].IsUbuntu() && !versions[1].IsUbuntu() {
		p.expectControl = true
		p.changelogSpan = view.LineSpan(top)
	}
}

// processControl accepts the update when Maintainer points at Ubuntu
// Developers and the original maintainer was preserved.
func (p *Plugin) processControl(view *patch.FileView) {
	var maintainerOK, originalKept bool
	for _, l := range view.Lines {
		if l.Origin == span.Removed {
			continue
		}
		if strings.HasPrefix(l.Text, maintainerField) {
			value := strings.TrimSpace(strings.TrimPrefix(l.Text, maintainerField))
			maintainerOK = value == expectedMaintainer
		}
		if strings.HasPrefix(l.Text, originalMaintainerField) {
			originalKept = true
		}
	}
	if maintainerOK && originalKept {
		p.controlOK = true
	}
}

// Finish implements plugin.Finisher.
func (p *Plugin) Finish(acc *plugin.Accumulator) {
	if !p.expectControl || p.controlOK {
		return
	}
	acc.Add(feedback.Item{
		Message: "first Ubuntu revision but debian/control does not update the Maintainer field",
		Rule:    feedback.MaintainerNotUpdated,
		Span:    p.changelogSpan,
		Hint:    "run update-maintainer from ubuntu-dev-tools",
		DocURL:  docControlFile,
	})
}
