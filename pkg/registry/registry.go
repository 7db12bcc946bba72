package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/schema"
)

// ParamSpec describes a parameter every node of a plugin is created with.
type ParamSpec struct {
	Name    string           `yaml:"name" json:"name" mapstructure:"name"`
	Kind    domain.ParamKind `yaml:"kind" json:"kind" mapstructure:"kind"`
	Default any              `yaml:"default" json:"default" mapstructure:"default"`
}

// Plugin describes a node type the factory can instantiate.
type Plugin struct {
	ID      string             `yaml:"id" json:"id" mapstructure:"id"`
	Label   string             `yaml:"label" json:"label" mapstructure:"label"`
	Version int                `yaml:"version" json:"version" mapstructure:"version"`
	Inputs  []domain.InputSpec `yaml:"inputs" json:"inputs" mapstructure:"inputs"`
	Params  []ParamSpec        `yaml:"params" json:"params" mapstructure:"params"`
	// Capabilities lists "output", "group_input", "group_output" and "reader".
	Capabilities []string `yaml:"capabilities" json:"capabilities" mapstructure:"capabilities"`
	// Container marks plugins whose nodes are groups.
	Container bool `yaml:"container" json:"container" mapstructure:"container"`
}

var capabilityNames = map[string]domain.Capability{
	"output":       domain.CapOutputTerminal,
	"group_input":  domain.CapGroupInput,
	"group_output": domain.CapGroupOutput,
	"reader":       domain.CapReader,
}

// Caps folds Capabilities into flags.
func (p Plugin) Caps() (domain.Capability, error) {
	var caps domain.Capability
	for _, name := range p.Capabilities {
		c, ok := capabilityNames[name]
		if !ok {
			return 0, fmt.Errorf("plugin %s: unknown capability %q", p.ID, name)
		}
		caps |= c
	}
	return caps, nil
}

// Schema returns the parameter schema of the plugin's nodes.
func (p Plugin) Schema() (schema.Schema, error) {
	s := make(schema.Schema, len(p.Params))
	for _, spec := range p.Params {
		t, err := schema.ForKind(spec.Kind)
		if err != nil {
			return nil, fmt.Errorf("plugin %s: parameter %s: %w", p.ID, spec.Name, err)
		}
		s[spec.Name] = t
	}
	return s, nil
}

// Registry manages the available plugins.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry.
// If a plugin with the same ID exists, it is overwritten.
func (r *Registry) Register(p Plugin) error {
	if p.ID == "" {
		return fmt.Errorf("plugin without id")
	}
	if _, err := p.Caps(); err != nil {
		return err
	}
	if _, err := p.Schema(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[p.ID] = p
	return nil
}

// Lookup returns the plugin registered under id.
func (r *Registry) Lookup(id string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[id]
	return p, ok
}

// List returns every plugin sorted by ID.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
