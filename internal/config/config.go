package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Plugins       map[string]PluginCfg `yaml:"plugins"`
	Ignore        []string             `yaml:"ignore"`
	Threshold     string               `yaml:"threshold"`
	ChangelogPath string               `yaml:"changelog-path"`
}

// PluginCfg is a YAML union: can be bool (enable/disable) or
// map[string]any (settings, implying enabled).
type PluginCfg struct {
	Enabled  bool
	Settings map[string]any
}

// UnmarshalYAML implements custom YAML unmarshalling for PluginCfg.
// It handles three forms:
//   - false -> Enabled=false, Settings=nil
//   - true  -> Enabled=true,  Settings=nil
//   - {key: val, ...} -> Enabled=true, Settings={key: val, ...}
func (p *PluginCfg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var b bool
		if err := value.Decode(&b); err == nil {
			p.Enabled = b
			p.Settings = nil
			return nil
		}
	}

	if value.Kind == yaml.MappingNode {
		var m map[string]any
		if err := value.Decode(&m); err != nil {
			return fmt.Errorf("invalid plugin config: %w", err)
		}
		p.Enabled = true
		p.Settings = m
		return nil
	}

	return fmt.Errorf("plugin config must be a bool or a mapping, got %v", value.Kind)
}
