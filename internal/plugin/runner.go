package plugin

import (
	"context"
	"fmt"
	"runtime"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"

	"github.com/dargad/sru-lint/internal/feedback"
	"github.com/dargad/sru-lint/internal/patch"
	"github.com/dargad/sru-lint/internal/pattern"
	"github.com/dargad/sru-lint/internal/span"
)

// Runner dispatches a parsed patch document to plugins and merges
// their findings into one deterministically ordered collection.
//
// Plugins run concurrently: the document is read-only, each plugin has
// a private accumulator, and the merge happens only after every plugin
// has finished. On context cancellation the runner keeps the findings
// of plugins that completed and skips the rest (partial success); it
// never returns a partially ordered report.
type Runner struct {
	Context *Context
	Ignore  []string // glob patterns for files excluded from all plugins
	Workers int      // 0 means GOMAXPROCS
}

// Result holds the output of one run.
type Result struct {
	Items []feedback.Item
	// Failures lists plugin panics the runner contained. Each failure
	// is also present in Items as an INTERNAL_PLUGIN_PANIC diagnostic.
	Failures []error
}

// Run executes the given plugins over the document.
func (r *Runner) Run(ctx context.Context, doc *patch.Document, plugins []Plugin) (*Result, error) {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	type pluginResult struct {
		items    []feedback.Item
		failures []error
	}
	results := make([]pluginResult, len(plugins))

	g := new(errgroup.Group)
	g.SetLimit(workers)

	for i, p := range plugins {
		i, p := i, p
		select {
		case <-ctx.Done():
		default:
			g.Go(func() error {
				results[i].items, results[i].failures = r.runPlugin(p, doc)
				return nil
			})
		}
	}
	_ = g.Wait()

	res := &Result{}
	batches := make([][]feedback.Item, len(results))
	for i, pr := range results {
		batches[i] = pr.items
		res.Failures = append(res.Failures, pr.failures...)
	}
	res.Items = feedback.Aggregate(batches...)

	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// runPlugin builds the plugin's matching file-views and processes each
// one, converting panics into internal diagnostics so one misbehaving
// plugin (or one bad file) cannot take down the run.
func (r *Runner) runPlugin(p Plugin, doc *patch.Document) ([]feedback.Item, []error) {
	acc := &Accumulator{log: r.Context.Log.Sub("plugins." + p.Name())}
	matcher := pattern.New(p.FilePatterns()...)

	matched := 0
	for _, f := range doc.Files {
		if r.isIgnored(f.Path) || !matcher.Matches(f.Path) {
			continue
		}
		matched++
		view := patch.NewView(f)
		if err := r.processOne(p, acc, view); err != nil {
			acc.Add(feedback.Item{
				Message:  err.Error(),
				Rule:     feedback.InternalPluginPanic,
				Severity: feedback.Error,
				Span:     span.Span{Path: view.Path, StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 1},
				Tags:     []string{feedback.TagInternal},
			})
			acc.failures = append(acc.failures, err)
		}
	}
	r.Context.Log.Printf("plugin %s: %d files matched, %d findings", p.Name(), matched, len(acc.items))

	if fin, ok := p.(Finisher); ok {
		if err := finishOne(p, fin, acc); err != nil {
			acc.Add(feedback.Item{
				Message:  err.Error(),
				Rule:     feedback.InternalPluginPanic,
				Severity: feedback.Error,
				Span:     span.Span{StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 1},
				Tags:     []string{feedback.TagInternal},
			})
			acc.failures = append(acc.failures, err)
		}
	}

	return acc.items, acc.failures
}

func (r *Runner) processOne(p Plugin, acc *Accumulator, view *patch.FileView) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("plugin %s panicked processing %s: %v", p.Name(), view.Path, v)
		}
	}()
	p.ProcessFile(acc, view)
	return nil
}

func finishOne(p Plugin, fin Finisher, acc *Accumulator) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("plugin %s panicked in finish: %v", p.Name(), v)
		}
	}()
	fin.Finish(acc)
	return nil
}

// isIgnored returns true if the file path matches any of the
// configured ignore patterns.
func (r *Runner) isIgnored(path string) bool {
	for _, pat := range r.Ignore {
		g, err := glob.Compile(pat)
		if err != nil {
			continue
		}
		if g.Match(path) {
			return true
		}
	}
	return false
}
