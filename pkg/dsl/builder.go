package dsl

import (
	"fmt"

	"github.com/aretw0/nodegraph/pkg/adapters/memory"
	"github.com/aretw0/nodegraph/pkg/domain"
)

// Builder manages the construction of one graph level.
type Builder struct {
	name  string
	order []*NodeBuilder
	nodes map[string]*NodeBuilder
}

// New creates a builder for the document name.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Add creates a node of pluginID in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(name, pluginID string) *NodeBuilder {
	if nb, ok := b.nodes[name]; ok {
		return nb
	}
	nb := &NodeBuilder{
		rec: &domain.Record{
			PluginID:   pluginID,
			ScriptName: name,
		},
		builder: b,
	}
	b.nodes[name] = nb
	b.order = append(b.order, nb)
	return nb
}

// Group adds a group node and builds its members with fn.
func (b *Builder) Group(name string, fn func(g *Builder)) *NodeBuilder {
	nb := b.Add(name, domain.PluginIDGroup)
	if nb.children == nil {
		nb.children = New(name)
	}
	if fn != nil {
		fn(nb.children)
	}
	return nb
}

// Records returns the records of this level, groups included.
func (b *Builder) Records() []*domain.Record {
	recs := make([]*domain.Record, len(b.order))
	for i, nb := range b.order {
		recs[i] = nb.Build()
	}
	return recs
}

// Document compiles the graph into a document.
func (b *Builder) Document() *domain.Document {
	return &domain.Document{
		Name:    b.name,
		Version: domain.DocumentVersion,
		Nodes:   b.Records(),
	}
}

// Store compiles the graph into an in-memory store holding the document.
func (b *Builder) Store() (*memory.Store, error) {
	store, err := memory.NewFromDocuments(b.Document())
	if err != nil {
		return nil, fmt.Errorf("failed to build memory store: %w", err)
	}
	return store, nil
}
