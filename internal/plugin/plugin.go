// Package plugin defines the analyzer contract and the engine that
// dispatches parsed patches to registered plugins.
package plugin

import (
	"github.com/dargad/sru-lint/internal/feedback"
	"github.com/dargad/sru-lint/internal/launchpad"
	"github.com/dargad/sru-lint/internal/log"
	"github.com/dargad/sru-lint/internal/patch"
)

// DefaultChangelogPath is the tail pattern plugins use to find the
// changelog unless the context overrides it.
const DefaultChangelogPath = "debian/changelog"

// Context carries the explicit dependencies handed to every plugin at
// construction: no plugin reaches for global state.
type Context struct {
	Log           *log.Logger
	Launchpad     launchpad.Client
	ChangelogPath string
}

// ChangelogPattern returns the changelog file pattern, honoring the
// per-run override.
func (c *Context) ChangelogPattern() string {
	if c != nil && c.ChangelogPath != "" {
		return c.ChangelogPath
	}
	return DefaultChangelogPath
}

// Accumulator collects one plugin's findings. Each plugin gets its own
// accumulator and never sees another's; the runner merges them only
// after every plugin has finished.
type Accumulator struct {
	log      *log.Logger
	items    []feedback.Item
	failures []error
}

// Add appends a finding, filling the severity from the code registry
// when the caller left it empty.
func (a *Accumulator) Add(item feedback.Item) {
	if item.Severity == "" {
		item.Severity = item.Rule.DefaultSeverity()
	}
	a.log.Printf("%s", item.String())
	a.items = append(a.items, item)
}

// Items returns the collected findings.
func (a *Accumulator) Items() []feedback.Item {
	return a.items
}

// Plugin is one analysis unit. Implementations declare the file
// patterns they are interested in and inspect each matched file-view.
// ProcessFile must confine its side effects to the accumulator (and
// logging); malformed input is reported as a finding, never a panic.
type Plugin interface {
	// Name is the stable identifier used for registration, selection
	// and deterministic ordering.
	Name() string

	// FilePatterns declares interest. A plugin declaring no patterns
	// receives no file-views.
	FilePatterns() []string

	// ProcessFile inspects one matched file-view.
	ProcessFile(acc *Accumulator, view *patch.FileView)
}

// Finisher is implemented by plugins that need a hook after all their
// matched file-views have been processed, for checks that span files.
type Finisher interface {
	Finish(acc *Accumulator)
}
