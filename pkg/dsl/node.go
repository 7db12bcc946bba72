package dsl

import "github.com/aretw0/nodegraph/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	rec      *domain.Record
	builder  *Builder
	children *Builder
}

// Version sets the plugin major and minor version the node was saved with.
func (n *NodeBuilder) Version(major int, minor ...int) *NodeBuilder {
	n.rec.MajorVersion = major
	if len(minor) > 0 {
		n.rec.MinorVersion = minor[0]
	}
	return n
}

// Label sets the display label.
func (n *NodeBuilder) Label(label string) *NodeBuilder {
	n.rec.Label = label
	return n
}

// Input connects the node named from to the input labelled label.
func (n *NodeBuilder) Input(label, from string) *NodeBuilder {
	if n.rec.Inputs == nil {
		n.rec.Inputs = make(map[string]string)
	}
	n.rec.Inputs[label] = from
	return n
}

// Mask connects the node named from to the mask input labelled label.
func (n *NodeBuilder) Mask(label, from string) *NodeBuilder {
	if n.rec.Masks == nil {
		n.rec.Masks = make(map[string]string)
	}
	n.rec.Masks[label] = from
	return n
}

// Param sets a parameter value.
func (n *NodeBuilder) Param(name string, value any) *NodeBuilder {
	if n.rec.Params == nil {
		n.rec.Params = make(map[string]any)
	}
	n.rec.Params[name] = value
	return n
}

// Link makes parameter name follow target, a "node.param" path relative to
// the node's level.
func (n *NodeBuilder) Link(name, target string) *NodeBuilder {
	if n.rec.Links == nil {
		n.rec.Links = make(map[string]string)
	}
	n.rec.Links[name] = target
	return n
}

// Then adds a node of pluginID fed by this one through its input label.
func (n *NodeBuilder) Then(name, pluginID, label string) *NodeBuilder {
	return n.builder.Add(name, pluginID).Input(label, n.rec.ScriptName)
}

// Build returns a copy of the underlying record, members included.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() *domain.Record {
	rec := n.rec.Clone()
	if n.children != nil {
		rec.Children = n.children.Records()
	}
	return rec
}
