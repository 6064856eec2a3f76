package plugin

import (
	"fmt"
	"sort"
)

// Factory constructs one plugin instance bound to a run context.
type Factory func(ctx *Context) Plugin

// UsageError reports a caller mistake (for example a --select filter
// naming no registered plugin). It is surfaced before any patch
// parsing is attempted.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

var registry = map[string]Factory{}

// Register adds a plugin factory under its stable name. First-party
// plugins call this from init; embedding applications may call it
// directly to add their own. Duplicate names are a programming error.
func Register(name string, f Factory) {
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("plugin %q registered twice", name))
	}
	registry[name] = f
}

// Names returns every registered plugin name in lexicographic order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create instantiates plugins for a run: all registered plugins when
// selected is empty, otherwise exactly the selected ones. Each
// concrete plugin is instantiated once, in name order, so tie-break
// ordering in the aggregated report is reproducible. Selecting an
// unregistered name is a *UsageError, not a silent no-op.
func Create(ctx *Context, selected []string) ([]Plugin, error) {
	names := selected
	if len(names) == 0 {
		names = Names()
	} else {
		for _, name := range names {
			if _, ok := registry[name]; !ok {
				return nil, &UsageError{Msg: fmt.Sprintf("unknown plugin %q (known: %v)", name, Names())}
			}
		}
		names = append([]string(nil), names...)
		sort.Strings(names)
		names = dedupe(names)
	}

	plugins := make([]Plugin, 0, len(names))
	for _, name := range names {
		plugins = append(plugins, registry[name](ctx))
	}
	return plugins, nil
}

// Reset clears the registry. Used for testing.
func Reset() {
	registry = map[string]Factory{}
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || sorted[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}
