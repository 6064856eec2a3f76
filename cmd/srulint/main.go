package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	flag "github.com/spf13/pflag"

	"github.com/dargad/sru-lint/internal/config"
	"github.com/dargad/sru-lint/internal/feedback"
	"github.com/dargad/sru-lint/internal/launchpad"
	"github.com/dargad/sru-lint/internal/log"
	"github.com/dargad/sru-lint/internal/output"
	"github.com/dargad/sru-lint/internal/patch"
	"github.com/dargad/sru-lint/internal/plugin"

	// Import all plugin packages so their init() functions register
	// them.
	_ "github.com/dargad/sru-lint/internal/plugins/changelogentry"
	_ "github.com/dargad/sru-lint/internal/plugins/patchformat"
	_ "github.com/dargad/sru-lint/internal/plugins/publishinghistory"
	_ "github.com/dargad/sru-lint/internal/plugins/srutemplate"
	_ "github.com/dargad/sru-lint/internal/plugins/updatemaintainer"
	_ "github.com/dargad/sru-lint/internal/plugins/uploadqueue"
)

func main() {
	os.Exit(run())
}

const usageText = `Usage: srulint <command> [flags] [patch]

Commands:
  check     Lint a debdiff/SRU patch (reads a file, or '-' for stdin)
  plugins   List available plugins
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'srulint <command> --help' for more information on a command.
`

func run() int {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	first := os.Args[1]

	switch first {
	case "--help", "-h":
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	switch first {
	case "check":
		return runCheck(os.Args[2:])
	case "plugins":
		return runPlugins(os.Args[2:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "srulint: unknown command %q\n\n%s", first, usageText)
		return 2
	}
}

func printVersion() {
	fmt.Printf("srulint %s\n", version())
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// runPlugins implements the "plugins" subcommand.
func runPlugins(args []string) int {
	fs := flag.NewFlagSet("plugins", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: srulint plugins\n\nList available plugins.\n")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	for _, name := range plugin.Names() {
		fmt.Println(name)
	}
	return 0
}

// runCheck implements the "check" subcommand: lint one patch.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var (
		configPath    string
		format        string
		threshold     string
		selected      []string
		changelogPath string
		noColor       bool
		quiet         bool
		verbose       bool
	)

	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&format, "format", "f", "text", "Output format: text, json")
	fs.StringVarP(&threshold, "threshold", "t", "", "Fail at or above this severity: info, warning, error")
	fs.StringSliceVarP(&selected, "select", "s", nil, "Run only the named plugins (repeatable)")
	fs.StringVar(&changelogPath, "changelog-path", "", "Override the changelog location within the patch")
	fs.BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: srulint check [flags] [patch]\n\n"+
			"Lint a debdiff/SRU-style unified diff.\n\n"+
			"The patch argument is a file path, or '-' to read from stdin\n"+
			"(the default when input is piped).\n\n"+
			"Exit codes: 0 no findings at the threshold, 1 findings at or\n"+
			"above the threshold, 2 unusable patch or bad invocation.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "srulint: check takes at most one patch argument\n")
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "srulint: %v\n", err)
		return 2
	}
	if changelogPath != "" {
		cfg.ChangelogPath = changelogPath
	}
	if threshold != "" {
		cfg.Threshold = threshold
	}

	thresh, err := feedback.ParseSeverity(cfg.Threshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "srulint: %v\n", err)
		return 2
	}

	logger := &log.Logger{Enabled: verbose, W: os.Stderr}
	pctx := &plugin.Context{
		Log:           logger,
		Launchpad:     launchpad.NewStatic(),
		ChangelogPath: cfg.ChangelogPath,
	}

	// Resolve the plugin set before touching the patch so usage errors
	// surface first.
	plugins, err := resolvePlugins(pctx, cfg, selected)
	if err != nil {
		fmt.Fprintf(os.Stderr, "srulint: %v\n", err)
		return 2
	}
	if len(plugins) == 0 {
		fmt.Fprintf(os.Stderr, "srulint: all plugins are disabled by configuration\n")
	}

	source, err := openPatch(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "srulint: %v\n", err)
		return 2
	}
	defer source.Close()

	doc, err := patch.Parse(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "srulint: %v\n", err)
		return 2
	}

	runner := &plugin.Runner{Context: pctx, Ignore: cfg.Ignore}
	result, err := runner.Run(context.Background(), doc, plugins)
	if err != nil {
		fmt.Fprintf(os.Stderr, "srulint: %v\n", err)
	}

	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "srulint: %v\n", failure)
	}

	if !quiet && (len(result.Items) > 0 || format == "json") {
		var formatter output.Formatter
		switch format {
		case "json":
			formatter = &output.JSONFormatter{Tool: "srulint", Version: version()}
		default:
			formatter = &output.TextFormatter{Color: !noColor}
		}

		if err := formatter.Format(os.Stdout, result.Items); err != nil {
			fmt.Fprintf(os.Stderr, "srulint: error writing output: %v\n", err)
			return 2
		}
	}

	if feedback.MeetsThreshold(result.Items, thresh) {
		return 1
	}
	return 0
}

// resolvePlugins picks the plugin set for a run: the --select list when
// given, otherwise the plugins the config leaves enabled. A config that
// disables every plugin yields an empty set, never the full registry.
func resolvePlugins(pctx *plugin.Context, cfg *config.Config, selected []string) ([]plugin.Plugin, error) {
	names := selected
	if len(names) == 0 {
		names = config.EnabledPlugins(cfg)
		if len(names) == 0 {
			return nil, nil
		}
	}
	return plugin.Create(pctx, names)
}

// openPatch resolves the patch argument: a file path, '-' for stdin,
// or stdin when no argument was given and input is piped.
func openPatch(args []string) (io.ReadCloser, error) {
	if len(args) == 0 {
		if !isStdinPipe() {
			return nil, errors.New("no patch given and stdin is not piped")
		}
		return io.NopCloser(os.Stdin), nil
	}
	if args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("opening patch: %w", err)
	}
	return f, nil
}

// isStdinPipe returns true if stdin is a pipe (not a terminal).
func isStdinPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// loadConfig loads configuration by either using the specified path or
// discovering a config file from the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	defaults := config.Defaults()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return config.Merge(defaults, loaded), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return config.Merge(defaults, nil), nil
	}

	discovered, err := config.Discover(cwd)
	if err != nil || discovered == "" {
		return config.Merge(defaults, nil), nil
	}

	loaded, err := config.Load(discovered)
	if err != nil {
		return nil, err
	}

	return config.Merge(defaults, loaded), nil
}
