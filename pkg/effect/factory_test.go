package effect_test

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

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.NewWithBuiltins()
	require.NoError(t, r.Register(registry.Plugin{
		ID:      "net.sf.cimg.CImgBlur",
		Label:   "BlurCImg",
		Version: 4,
		Inputs:  []domain.InputSpec{{Label: "Source"}, {Label: "Mask", Mask: true, Optional: true}},
		Params: []registry.ParamSpec{
			{Name: "size", Kind: domain.ParamFloat, Default: 1.0},
		},
	}))
	require.NoError(t, r.Register(registry.Plugin{
		ID:           "fr.inria.openfx.ReadOIIO",
		Label:        "ReadOIIO",
		Version:      1,
		Capabilities: []string{"reader"},
		Params: []registry.ParamSpec{
			{Name: "filename", Kind: domain.ParamFile, Default: ""},
		},
	}))
	return r
}

func TestFactory_CreateNode(t *testing.T) {
	ctx := context.Background()
	f := effect.NewFactory(testRegistry(t))
	c := collection.New()

	n, err := f.CreateNode(ctx, c, &domain.Record{
		PluginID:   "net.sf.cimg.CImgBlur",
		ScriptName: "Blur1",
		Label:      "Soften",
		Params:     map[string]any{"size": 3.5, "extra": true},
	})
	require.NoError(t, err)

	assert.Equal(t, "Blur1", n.ScriptName())
	assert.Equal(t, "Soften", n.Label())
	assert.Equal(t, 4, n.MajorVersion())
	assert.Equal(t, 2, n.MaxInputs())
	assert.Equal(t, 3.5, n.Param("size").Value())
	assert.Equal(t, domain.ParamBool, n.Param("extra").Kind())
	assert.Same(t, n, c.NodeByName("Blur1"))
}

func TestFactory_Naming(t *testing.T) {
	ctx := context.Background()
	f := effect.NewFactory(testRegistry(t))
	c := collection.New()

	a, err := f.CreateNode(ctx, c, &domain.Record{PluginID: "net.sf.cimg.CImgBlur"})
	require.NoError(t, err)
	assert.Equal(t, "BlurCImg1", a.ScriptName())

	b, err := f.CreateNode(ctx, c, &domain.Record{PluginID: "net.sf.cimg.CImgBlur", ScriptName: "BlurCImg1"})
	require.NoError(t, err)
	assert.Equal(t, "BlurCImg11", b.ScriptName(), "a taken persisted name gets a digit suffix")

	d, err := f.CreateNode(ctx, c, &domain.Record{PluginID: "net.sf.cimg.CImgBlur", ScriptName: "***"})
	require.NoError(t, err)
	assert.Equal(t, "BlurCImg2", d.ScriptName(), "an unusable persisted name is derived from the label")
}

func TestFactory_Stub(t *testing.T) {
	ctx := context.Background()
	f := effect.NewFactory(testRegistry(t))
	c := collection.New()

	n, err := f.CreateNode(ctx, c, &domain.Record{
		PluginID:   "com.vendor.Missing",
		ScriptName: "Vendor1",
		Inputs:     map[string]string{"Source": "Read1", "Back": "Read2"},
		Masks:      map[string]string{"Matte": "Roto1"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PluginIDStub, n.PluginID())
	assert.Equal(t, "Vendor1", n.ScriptName())
	assert.Equal(t, "com.vendor.Missing", n.Param(domain.ParamStubPluginID).Value())
	assert.Equal(t, 3, n.MaxInputs())
	assert.Equal(t, 0, n.InputIndex("Back"))
	assert.Equal(t, 1, n.InputIndex("Source"))
	assert.True(t, n.IsInputMask(n.InputIndex("Matte")))
}

func TestFactory_Group(t *testing.T) {
	ctx := context.Background()
	f := effect.NewFactory(testRegistry(t))
	c := collection.New()

	n, err := f.CreateNode(ctx, c, &domain.Record{PluginID: domain.PluginIDGroup})
	require.NoError(t, err)
	_, ok := n.(*group.Group)
	assert.True(t, ok)
	_, ok = n.AsContainer()
	assert.True(t, ok)
}

func TestFactory_Capabilities(t *testing.T) {
	ctx := context.Background()
	f := effect.NewFactory(testRegistry(t))
	c := collection.New()

	n, err := f.CreateNode(ctx, c, &domain.Record{PluginID: "fr.inria.openfx.ReadOIIO"})
	require.NoError(t, err)
	assert.True(t, n.Capabilities().Has(domain.CapReader))
	assert.True(t, n.Param("filename").IsPathLike())
	assert.Equal(t, "ReadOIIO1", n.ScriptName())
}

func TestFactory_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := effect.NewFactory(testRegistry(t))
	c := collection.New()
	_, err := f.CreateNode(ctx, c, &domain.Record{PluginID: "net.sf.cimg.CImgBlur"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, c.HasNodes())
}
