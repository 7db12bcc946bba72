package ports

import (
	"context"

	"github.com/aretw0/nodegraph/pkg/domain"
)

// GraphLoader defines how persisted graphs are retrieved.
// This allows the storage layer (Loam, FS, Memory) to be decoupled.
type GraphLoader interface {
	// LoadGraph retrieves a graph document by name.
	// Returns domain.ErrGraphNotFound if the graph does not exist.
	LoadGraph(ctx context.Context, name string) (*domain.Document, error)

	// ListGraphs returns the names of all available graphs.
	ListGraphs(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload of a graph being viewed.
type Watchable interface {
	// Watch returns a channel receiving the name of every graph that changed.
	Watch(ctx context.Context) (<-chan string, error)
}
