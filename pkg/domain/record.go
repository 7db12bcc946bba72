package domain

// Record is the abstract persisted shape of one node.
// The on-disk codec is external; see pkg/codec for the bundled YAML/JSON one.
type Record struct {
	PluginID string `json:"plugin_id" yaml:"plugin_id" mapstructure:"plugin_id"`
	// MajorVersion and MinorVersion are 0 when the version was not persisted.
	MajorVersion int    `json:"major,omitempty" yaml:"major,omitempty" mapstructure:"major"`
	MinorVersion int    `json:"minor,omitempty" yaml:"minor,omitempty" mapstructure:"minor"`
	ScriptName   string `json:"name" yaml:"name" mapstructure:"name"`
	Label        string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`

	// Inputs maps an input label (or a legacy numeric index) to the referenced node name.
	Inputs map[string]string `json:"inputs,omitempty" yaml:"inputs,omitempty" mapstructure:"inputs"`
	// Masks maps a mask input label (or index) to the referenced node name.
	Masks map[string]string `json:"masks,omitempty" yaml:"masks,omitempty" mapstructure:"masks"`

	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`
	// Links maps a parameter name to a "node.param" target.
	Links map[string]string `json:"links,omitempty" yaml:"links,omitempty" mapstructure:"links"`

	Children []*Record `json:"children,omitempty" yaml:"children,omitempty" mapstructure:"children"`
}

// HasVersion reports whether a major version was persisted.
func (r *Record) HasVersion() bool {
	return r.MajorVersion > 0
}

// Document is a persisted graph: a named list of top-level records.
type Document struct {
	Name    string    `json:"name" yaml:"name" mapstructure:"name"`
	Version int       `json:"version" yaml:"version" mapstructure:"version"`
	Nodes   []*Record `json:"nodes" yaml:"nodes" mapstructure:"nodes"`
}

// DocumentVersion is the version written by this module.
const DocumentVersion = 1

// Clone returns a deep copy of the record. Parameter values are copied
// shallowly.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.Inputs = cloneStrings(r.Inputs)
	c.Masks = cloneStrings(r.Masks)
	c.Links = cloneStrings(r.Links)
	if r.Params != nil {
		c.Params = make(map[string]any, len(r.Params))
		for k, v := range r.Params {
			c.Params[k] = v
		}
	}
	if r.Children != nil {
		c.Children = make([]*Record, len(r.Children))
		for i, child := range r.Children {
			c.Children[i] = child.Clone()
		}
	}
	return &c
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	if d.Nodes != nil {
		c.Nodes = make([]*Record, len(d.Nodes))
		for i, rec := range d.Nodes {
			c.Nodes[i] = rec.Clone()
		}
	}
	return &c
}

func cloneStrings(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
