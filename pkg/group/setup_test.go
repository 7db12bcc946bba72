package group_test

import (
	"context"
	"testing"

	"github.com/aretw0/nodegraph/pkg/collection"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/effect"
	"github.com/aretw0/nodegraph/pkg/group"
	"github.com/aretw0/nodegraph/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupInitialSubGraph(t *testing.T) {
	ctx := context.Background()
	factory := effect.NewFactory(registry.NewWithBuiltins())
	top := collection.New()

	node, err := factory.CreateNode(ctx, top, &domain.Record{PluginID: domain.PluginIDGroup})
	require.NoError(t, err)
	g, ok := node.(*group.Group)
	require.True(t, ok)
	assert.Equal(t, "Group1", g.ScriptName())

	require.NoError(t, g.SetupInitialSubGraph(ctx, factory))

	out := g.NodeByName("Output")
	in := g.NodeByName("Input1")
	require.NotNil(t, out)
	require.NotNil(t, in)
	assert.Same(t, in, out.Input(0))
	assert.Same(t, out, g.OutputNode())
	assert.Equal(t, 1, g.MaxInputs())
	assert.True(t, g.Members().IsEditedByUser())
}

func TestSetupInitialSubGraph_NotEditable(t *testing.T) {
	ctx := context.Background()
	factory := effect.NewFactory(registry.NewWithBuiltins())
	_, g := newGroup(t, domain.GraphHooks{})
	g.Members().SetEditable(false)

	require.NoError(t, g.SetupInitialSubGraph(ctx, factory))
	assert.False(t, g.Members().HasNodes())
}
