// Package uploadqueue checks whether the version a changelog entry
// introduces is already sitting in an Ubuntu upload queue awaiting
// review.
package uploadqueue

import (
	"fmt"
	"strings"

	"github.com/dargad/sru-lint/internal/debian"
	"github.com/dargad/sru-lint/internal/feedback"
	"github.com/dargad/sru-lint/internal/launchpad"
	"github.com/dargad/sru-lint/internal/patch"
	"github.com/dargad/sru-lint/internal/plugin"
	"github.com/dargad/sru-lint/internal/span"
)

const docChangelogFormat = "https://documentation.ubuntu.com/project/contributors/patching/make-changes-to-a-package/#updating-the-changelog"

func init() {
	plugin.Register("upload-queue", New)
}

// Plugin checks the distribution upload queues.
type Plugin struct {
	ctx *plugin.Context
}

// New implements plugin.Factory.
func New(ctx *plugin.Context) plugin.Plugin {
	return &Plugin{ctx: ctx}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string { return "upload-queue" }

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
		for _, suite := range h.Distributions {
			p.checkQueue(acc, view, l, h, suite)
		}
	}

	if !found && strings.TrimSpace(view.AddedText()) != "" {
		acc.Add(feedback.Item{
			Message: "no parseable changelog entry header in added lines",
			Rule:    feedback.QueueUnparseable,
			Span:    view.Span,
			DocURL:  docChangelogFormat,
		})
	}
}

func (p *Plugin) checkQueue(acc *plugin.Accumulator, view *patch.FileView, l span.Line, h debian.ChangelogHeader, suite string) {
	entries, err := p.ctx.Launchpad.UploadQueue(h.Source, suite)
	if err != nil {
		p.ctx.Log.Printf("upload queue lookup for %s/%s failed: %v", h.Source, suite, err)
		return
	}
	for _, e := range entries {
		if e.Version != h.Version || !launchpad.ReviewStates[e.Status] {
			continue
		}
		acc.Add(feedback.Item{
			Message: fmt.Sprintf("version %s of %s is already in the %s upload queue (%s)",
				h.Version, h.Source, suite, e.Status),
			Rule: feedback.QueueAlreadyQueued,
			Span: view.LineSpan(l),
			Hint: "wait for the queued upload to be reviewed, or supersede it",
		})
		return
	}
}
