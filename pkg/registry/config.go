package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFile represents the structure of plugins.yaml
type ConfigFile struct {
	Plugins []Plugin `yaml:"plugins" json:"plugins"`
}

// LoadFile reads a plugin catalogue (YAML or JSON) and registers its plugins.
// A missing file registers nothing.
func (r *Registry) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read plugin catalogue: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return 0, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return 0, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	n := 0
	for _, p := range cfg.Plugins {
		if p.ID == "" {
			continue
		}
		if err := r.Register(p); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
