package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/nodegraph/pkg/codec"
	"github.com/aretw0/nodegraph/pkg/domain"
)

// Loader implements ports.GraphLoader over raw YAML or JSON sources.
// Sources are decoded on every load, so a malformed one only fails its own graph.
type Loader struct {
	graphs map[string][]byte
	format codec.Format
}

// NewLoader creates a loader from raw documents keyed by graph name.
func NewLoader(data map[string]string, format codec.Format) *Loader {
	graphs := make(map[string][]byte, len(data))
	for k, v := range data {
		graphs[k] = []byte(v)
	}
	return &Loader{
		graphs: graphs,
		format: format,
	}
}

// LoadGraph decodes the raw document stored under name.
func (l *Loader) LoadGraph(ctx context.Context, name string) (*domain.Document, error) {
	content, ok := l.graphs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, name)
	}
	doc, err := codec.Unmarshal(content, l.format)
	if err != nil {
		return nil, fmt.Errorf("graph %s: %w", name, err)
	}
	if doc.Name == "" {
		doc.Name = name
	}
	return doc, nil
}

// ListGraphs returns all available graph names.
func (l *Loader) ListGraphs(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.graphs))
	for k := range l.graphs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
