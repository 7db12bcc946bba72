package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDocument(name string) *domain.Document {
	return &domain.Document{
		Name:    name,
		Version: domain.DocumentVersion,
		Nodes: []*domain.Record{
			{PluginID: "fr.inria.openfx.ReadOIIO", MajorVersion: 1, ScriptName: "Read1"},
			{
				PluginID:     "net.sf.cimg.CImgBlur",
				MajorVersion: 4,
				ScriptName:   "Blur1",
				Inputs:       map[string]string{"Source": "Read1"},
				Params:       map[string]any{"size": 3.5},
			},
			{
				PluginID:   domain.PluginIDGroup,
				ScriptName: "Group1",
				Children: []*domain.Record{
					{PluginID: domain.PluginIDOutput, ScriptName: "Output"},
				},
			},
		},
	}
}

// RunGraphStoreContract runs a suite of tests to verify that a GraphStore implementation
// adheres to the defined interface contract.
func RunGraphStoreContract(t *testing.T, store GraphStore) {
	ctx := context.Background()
	name := "contract-test-graph-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		doc := contractDocument(name)

		err := store.SaveGraph(ctx, name, doc)
		require.NoError(t, err, "SaveGraph should not return error")

		loaded, err := store.LoadGraph(ctx, name)
		require.NoError(t, err, "LoadGraph should not return error")
		require.Len(t, loaded.Nodes, 3)
		assert.Equal(t, name, loaded.Name)
		assert.Equal(t, "Blur1", loaded.Nodes[1].ScriptName)
		assert.Equal(t, 4, loaded.Nodes[1].MajorVersion)
		assert.Equal(t, "Read1", loaded.Nodes[1].Inputs["Source"])
		// Numbers may come back as float64 or int depending on the codec.
		assert.NotNil(t, loaded.Nodes[1].Params["size"])
		require.Len(t, loaded.Nodes[2].Children, 1)
		assert.Equal(t, domain.PluginIDOutput, loaded.Nodes[2].Children[0].PluginID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.LoadGraph(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrGraphNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.SaveGraph(ctx, name, contractDocument(name))
		require.NoError(t, err)

		err = store.DeleteGraph(ctx, name)
		require.NoError(t, err, "DeleteGraph should not return error")

		_, err = store.LoadGraph(ctx, name)
		assert.ErrorIs(t, err, domain.ErrGraphNotFound, "LoadGraph after DeleteGraph should return ErrGraphNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.SaveGraph(ctx, id1, contractDocument(id1))
		_ = store.SaveGraph(ctx, id2, contractDocument(id2))

		defer func() {
			_ = store.DeleteGraph(ctx, id1)
			_ = store.DeleteGraph(ctx, id2)
		}()

		graphs, err := store.ListGraphs(ctx)
		require.NoError(t, err)
		assert.Contains(t, graphs, id1)
		assert.Contains(t, graphs, id2)
	})
}
