package main

import (
	"errors"
	"testing"

	"github.com/dargad/sru-lint/internal/config"
	"github.com/dargad/sru-lint/internal/plugin"
)

func allDisabled() *config.Config {
	plugins := make(map[string]config.PluginCfg)
	for _, name := range plugin.Names() {
		plugins[name] = config.PluginCfg{Enabled: false}
	}
	return &config.Config{Plugins: plugins, Threshold: "warning"}
}

func TestResolvePlugins_AllDisabledRunsNothing(t *testing.T) {
	plugins, err := resolvePlugins(&plugin.Context{}, allDisabled(), nil)
	if err != nil {
		t.Fatalf("resolvePlugins: %v", err)
	}
	if len(plugins) != 0 {
		t.Errorf("a config disabling everything must yield no plugins, got %v", pluginNames(plugins))
	}
}

func TestResolvePlugins_DefaultsRunAll(t *testing.T) {
	plugins, err := resolvePlugins(&plugin.Context{}, config.Defaults(), nil)
	if err != nil {
		t.Fatalf("resolvePlugins: %v", err)
	}
	if len(plugins) != len(plugin.Names()) {
		t.Errorf("expected every registered plugin, got %v", pluginNames(plugins))
	}
}

func TestResolvePlugins_SelectionOverridesConfig(t *testing.T) {
	plugins, err := resolvePlugins(&plugin.Context{}, allDisabled(), []string{"changelog-entry"})
	if err != nil {
		t.Fatalf("resolvePlugins: %v", err)
	}
	if len(plugins) != 1 || plugins[0].Name() != "changelog-entry" {
		t.Errorf("explicit selection must win, got %v", pluginNames(plugins))
	}
}

func TestResolvePlugins_UnknownSelection(t *testing.T) {
	_, err := resolvePlugins(&plugin.Context{}, config.Defaults(), []string{"no-such-plugin"})
	var uerr *plugin.UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected *plugin.UsageError, got %v", err)
	}
}

func pluginNames(plugins []plugin.Plugin) []string {
	out := make([]string, len(plugins))
	for i, p := range plugins {
		out[i] = p.Name()
	}
	return out
}
