package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dargad/sru-lint/internal/plugin"
)

const configFileName = ".srulint.yml"

// Load reads and parses a config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return &cfg, nil
}

// Discover walks up the directory tree from startDir looking for a
// .srulint.yml config file. It stops searching when it encounters a
// .git directory (the repository root) or reaches the filesystem root.
// Returns the path to the config file, or "" if none was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Defaults returns a Config with every registered plugin enabled and
// the threshold at "warning".
func Defaults() *Config {
	names := plugin.Names()
	plugins := make(map[string]PluginCfg, len(names))
	for _, name := range names {
		plugins[name] = PluginCfg{Enabled: true}
	}
	return &Config{
		Plugins:   plugins,
		Threshold: "warning",
	}
}

// Merge merges a loaded config on top of defaults. The loaded config's
// plugin entries override the defaults; any plugin not mentioned keeps
// its default value. Ignore patterns come from the loaded config only.
func Merge(defaults, loaded *Config) *Config {
	plugins := make(map[string]PluginCfg, len(defaults.Plugins))
	for k, v := range defaults.Plugins {
		plugins[k] = v
	}

	out := &Config{
		Plugins:       plugins,
		Threshold:     defaults.Threshold,
		ChangelogPath: defaults.ChangelogPath,
	}
	if loaded == nil {
		return out
	}

	for k, v := range loaded.Plugins {
		plugins[k] = v
	}
	out.Ignore = loaded.Ignore
	if loaded.Threshold != "" {
		out.Threshold = loaded.Threshold
	}
	if loaded.ChangelogPath != "" {
		out.ChangelogPath = loaded.ChangelogPath
	}
	return out
}

// EnabledPlugins returns the names of enabled plugins in lexicographic
// order.
func EnabledPlugins(cfg *Config) []string {
	var names []string
	for name, pc := range cfg.Plugins {
		if pc.Enabled {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
