package tests

import (
	"context"
	"testing"

	"github.com/aretw0/nodegraph/pkg/ports"
)

// GraphLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphLoader.
// setupData maps each graph the loader was seeded with to the number of top-level records it holds.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, setupData map[string]int) {
	t.Helper()
	ctx := context.Background()

	// 1. Test LoadGraph (Success)
	t.Run("LoadGraph_Success", func(t *testing.T) {
		for name, count := range setupData {
			doc, err := loader.LoadGraph(ctx, name)
			if err != nil {
				t.Fatalf("unexpected error loading graph %s: %v", name, err)
			}
			if len(doc.Nodes) != count {
				t.Errorf("record count mismatch for %s. got %d, want %d", name, len(doc.Nodes), count)
			}
		}
	})

	// 2. Test LoadGraph (NotFound)
	t.Run("LoadGraph_NotFound", func(t *testing.T) {
		_, err := loader.LoadGraph(ctx, "non-existent-graph")
		if err == nil {
			t.Error("expected error for non-existent graph, got nil")
		}
	})

	// 3. Test ListGraphs
	t.Run("ListGraphs", func(t *testing.T) {
		graphs, err := loader.ListGraphs(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing graphs: %v", err)
		}

		if len(graphs) != len(setupData) {
			t.Errorf("expected %d graphs, got %d", len(setupData), len(graphs))
		}

		// Verify all expected names are present
		lookup := make(map[string]bool)
		for _, name := range graphs {
			lookup[name] = true
		}
		for name := range setupData {
			if !lookup[name] {
				t.Errorf("graph %s missing from list", name)
			}
		}
	})
}
