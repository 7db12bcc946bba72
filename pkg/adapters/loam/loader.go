package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/nodegraph/pkg/codec"
	"github.com/aretw0/nodegraph/pkg/domain"
)

// Loader adapts a Loam repository to the GraphLoader interface.
// Every document of the repository is a graph: its front matter holds the
// records, its body is free-form notes.
type Loader struct {
	Repo *loam.TypedRepository[GraphMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[GraphMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// LoadGraph retrieves a graph document from the Loam repository.
// Loam resolves "comp" to comp.md, comp.yaml or comp.json.
func (l *Loader) LoadGraph(ctx context.Context, name string) (*domain.Document, error) {
	doc, err := l.Repo.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrGraphNotFound, name, err)
	}

	meta := doc.Data
	if meta.Version > domain.DocumentVersion {
		return nil, fmt.Errorf("graph %s: document version %d is newer than supported version %d", name, meta.Version, domain.DocumentVersion)
	}

	records, err := codec.DecodeRecords(meta.Nodes)
	if err != nil {
		return nil, fmt.Errorf("graph %s: %w", name, err)
	}

	graphName := meta.Name
	if graphName == "" {
		graphName = trimExtension(doc.ID)
	}
	return &domain.Document{
		Name:    graphName,
		Version: meta.Version,
		Nodes:   records,
	}, nil
}

// ListGraphs lists the graph names of the repository, extensions stripped.
// Two files resolving to the same name are reported as an error.
func (l *Loader) ListGraphs(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))

	for _, doc := range docs {
		name := trimExtension(doc.ID)
		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: graph '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				// Loam debounces; forward the graph name, respecting cancellation.
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
