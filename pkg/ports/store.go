package ports

import (
	"context"

	"github.com/aretw0/nodegraph/pkg/domain"
)

// GraphStore defines the interface for persisting graph documents.
type GraphStore interface {
	GraphLoader

	// SaveGraph persists doc under name, replacing any previous version.
	SaveGraph(ctx context.Context, name string, doc *domain.Document) error

	// DeleteGraph removes the graph. Deleting a missing graph is not an error.
	DeleteGraph(ctx context.Context, name string) error
}
