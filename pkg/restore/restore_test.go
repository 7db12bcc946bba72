package restore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/nodegraph/pkg/collection"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/effect"
	"github.com/aretw0/nodegraph/pkg/group"
	"github.com/aretw0/nodegraph/pkg/ports"
	"github.com/aretw0/nodegraph/pkg/registry"
	"github.com/aretw0/nodegraph/pkg/restore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	readID   = "fr.inria.openfx.ReadOIIO"
	blurID   = "net.sf.cimg.CImgBlur"
	writeID  = "fr.inria.openfx.WriteOIIO"
	keyMixID = "net.sf.openfx.KeyMix"
)

func newFactory(t *testing.T) *effect.Factory {
	t.Helper()
	r := registry.NewWithBuiltins()
	for _, p := range []registry.Plugin{
		{
			ID: readID, Label: "ReadOIIO", Version: 1, Capabilities: []string{"reader"},
			Params: []registry.ParamSpec{
				{Name: "filename", Kind: domain.ParamFile, Default: ""},
				{Name: "gain", Kind: domain.ParamFloat, Default: 1.0},
			},
		},
		{
			ID: blurID, Label: "BlurCImg", Version: 4,
			Inputs: []domain.InputSpec{{Label: "Source"}, {Label: "Mask", Mask: true, Optional: true}},
			Params: []registry.ParamSpec{{Name: "size", Kind: domain.ParamFloat, Default: 1.0}},
		},
		{
			ID: writeID, Label: "WriteOIIO", Version: 1, Capabilities: []string{"output"},
			Inputs: []domain.InputSpec{{Label: "Source"}},
		},
		{
			ID: keyMixID, Label: "KeyMix", Version: 1,
			Inputs: []domain.InputSpec{
				{Label: "Source"},
				{Label: "MaskA", Mask: true},
				{Label: "MaskB", Mask: true},
			},
		},
	} {
		require.NoError(t, r.Register(p))
	}
	return effect.NewFactory(r)
}

func mustCreate(t *testing.T, f ports.NodeFactory, coll domain.Collection, pluginID, name string) domain.Node {
	t.Helper()
	n, err := f.CreateNode(context.Background(), coll, &domain.Record{PluginID: pluginID, ScriptName: name})
	require.NoError(t, err)
	require.Equal(t, name, n.ScriptName())
	return n
}

// buildSource builds Read1 -> Blur1 -> Write1 plus Group1 fed by Read1,
// wrapping Input1 -> Blur1 -> Output. Blur1.size is linked to Read1.gain.
func buildSource(t *testing.T, f ports.NodeFactory) *collection.Collection {
	t.Helper()
	src := collection.New()
	read := mustCreate(t, f, src, readID, "Read1")
	blur := mustCreate(t, f, src, blurID, "Blur1")
	write := mustCreate(t, f, src, writeID, "Write1")
	g := mustCreate(t, f, src, domain.PluginIDGroup, "Group1")

	in := mustCreate(t, f, g.(domain.Collection), domain.PluginIDInput, "Input1")
	inner := mustCreate(t, f, g.(domain.Collection), blurID, "Blur1")
	out := mustCreate(t, f, g.(domain.Collection), domain.PluginIDOutput, "Output")

	blur.SwapInput(read, 0)
	write.SwapInput(blur, 0)
	g.SwapInput(read, 0)
	inner.SwapInput(in, 0)
	out.SwapInput(inner, 0)
	blur.Param("size").SetLink(read, "gain")
	return src
}

func TestRestore_RoundTrip(t *testing.T) {
	f := newFactory(t)
	records := restore.Serialize(buildSource(t, f))
	require.Len(t, records, 4)
	assert.Equal(t, "Read1.gain", records[1].Links["size"])
	assert.Equal(t, map[string]string{"1": "Read1"}, records[3].Inputs)

	dst := collection.New()
	res, err := restore.New(f).CreateNodesFromRecords(context.Background(), dst, records, restore.FlagNone)
	require.NoError(t, err)
	assert.True(t, res.OK(), "%v", res.Anomalies)
	assert.Len(t, res.Created, 4)
	assert.Equal(t, 7, res.Total)

	assert.Equal(t, records, restore.Serialize(dst), "an empty target restores an identical graph")
}

func TestRestore_RenamesOnCollision(t *testing.T) {
	f := newFactory(t)
	records := restore.Serialize(buildSource(t, f))

	dst := collection.New()
	preRead := mustCreate(t, f, dst, readID, "Read1")
	preBlur := mustCreate(t, f, dst, blurID, "Blur1")

	res, err := restore.New(f).CreateNodesFromRecords(context.Background(), dst, records, restore.FlagNone)
	require.NoError(t, err)
	require.True(t, res.OK(), "%v", res.Anomalies)
	require.Len(t, res.Created, 4)

	read, blur, write := res.Created[0], res.Created[1], res.Created[2]
	g, ok := res.Created[3].(*group.Group)
	require.True(t, ok)

	assert.Equal(t, "Read11", read.ScriptName())
	assert.Equal(t, "Blur11", blur.ScriptName())
	assert.Equal(t, "Write1", write.ScriptName())

	assert.Same(t, read, blur.Input(0), "wiring follows the restored nodes, not the names")
	assert.Same(t, blur, write.Input(0))
	assert.Same(t, read, g.Input(0))
	assert.Nil(t, preBlur.Input(0))
	assert.Empty(t, preRead.Outputs())

	link, ok := blur.Param("size").Link()
	require.True(t, ok)
	assert.Same(t, read, link.Node)

	inner := g.NodeByName("Blur1")
	require.NotNil(t, inner)
	assert.Same(t, g.NodeByName("Input1"), inner.Input(0))
	assert.Same(t, inner, g.OutputNodeInput())
}

func TestRestore_MaskIndexOnlyRemapsFirst(t *testing.T) {
	f := newFactory(t)
	dst := collection.New()
	records := []*domain.Record{
		{PluginID: readID, ScriptName: "Roto1"},
		{PluginID: readID, ScriptName: "Roto2"},
		{
			PluginID:   keyMixID,
			ScriptName: "KeyMix1",
			Masks:      map[string]string{"0": "Roto1", "1": "Roto2"},
		},
	}

	res, err := restore.New(f).CreateNodesFromRecords(context.Background(), dst, records, restore.FlagNone)
	require.NoError(t, err)
	require.True(t, res.OK(), "%v", res.Anomalies)

	km := dst.NodeByName("KeyMix1")
	// Mask index 0 maps to the first mask slot (1). Mask index 1 is not
	// remapped and lands on slot 1 as well, replacing Roto1.
	assert.Same(t, dst.NodeByName("Roto2"), km.Input(1))
	assert.Nil(t, km.Input(2))
	assert.Nil(t, km.Input(0))
}

func TestRestore_LegacyNumericInput(t *testing.T) {
	f := newFactory(t)
	dst := collection.New()
	records := []*domain.Record{
		{PluginID: readID, ScriptName: "Read1"},
		{PluginID: blurID, ScriptName: "Blur1", Inputs: map[string]string{"0": "Read1"}},
	}

	res, err := restore.New(f).CreateNodesFromRecords(context.Background(), dst, records, restore.FlagNone)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Same(t, dst.NodeByName("Read1"), dst.NodeByName("Blur1").Input(0))
}

func TestRestore_Anomalies(t *testing.T) {
	f := newFactory(t)
	dst := collection.New()
	var observed []restore.AnomalyKind

	records := []*domain.Record{
		{PluginID: readID, ScriptName: "Read1"},
		{PluginID: "com.vendor.Missing", MajorVersion: 2, ScriptName: "Vendor1", Inputs: map[string]string{"Source": "Read1"}},
		{PluginID: blurID, MajorVersion: 3, ScriptName: "Blur1", Inputs: map[string]string{"Source": "Nowhere"}},
		{PluginID: blurID, ScriptName: "Blur2", Inputs: map[string]string{"Bogus": "Read1"}},
	}

	r := restore.New(f, restore.WithAnomalyObserver(func(a restore.Anomaly) {
		observed = append(observed, a.Kind)
	}))
	res, err := r.CreateNodesFromRecords(context.Background(), dst, records, restore.FlagNone)
	require.NoError(t, err)

	assert.False(t, res.OK())
	assert.Len(t, res.Created, 4, "anomalies never drop nodes")
	assert.Equal(t, 1, res.Count(restore.AnomalyPluginNotFound))
	assert.Equal(t, 1, res.Count(restore.AnomalyVersionMismatch))
	assert.Equal(t, 2, res.Count(restore.AnomalyUnresolvedInput))
	assert.Len(t, observed, 4)

	stub := dst.NodeByName("Vendor1")
	require.NotNil(t, stub)
	assert.Equal(t, domain.PluginIDStub, stub.PluginID())
	assert.Same(t, dst.NodeByName("Read1"), stub.Input(stub.InputIndex("Source")))

	// The missing plugin id survives a save.
	saved := restore.Serialize(dst)
	assert.Equal(t, "com.vendor.Missing", saved[1].PluginID)
	assert.Equal(t, "Read1", saved[1].Inputs["Source"])
}

func TestRestore_VersionMismatchIsNotFatal(t *testing.T) {
	f := newFactory(t)
	dst := collection.New()
	res, err := restore.New(f).CreateNodesFromRecords(context.Background(), dst, []*domain.Record{
		{PluginID: blurID, MajorVersion: 3, MinorVersion: 1, ScriptName: "Blur1"},
	}, restore.FlagNone)
	require.NoError(t, err)

	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, restore.AnomalyVersionMismatch, res.Anomalies[0].Kind)
	assert.True(t, res.Anomalies[0].Kind.IsWarning())
	assert.Equal(t, 4, dst.NodeByName("Blur1").MajorVersion())
}

type failingFactory struct {
	ports.NodeFactory
	fail string
}

func (f failingFactory) CreateNode(ctx context.Context, coll domain.Collection, rec *domain.Record) (domain.Node, error) {
	if rec.ScriptName == f.fail {
		return nil, errors.New("plugin crashed")
	}
	return f.NodeFactory.CreateNode(ctx, coll, rec)
}

func TestRestore_CreateFailedContinues(t *testing.T) {
	f := failingFactory{NodeFactory: newFactory(t), fail: "Read1"}
	dst := collection.New()
	res, err := restore.New(f).CreateNodesFromRecords(context.Background(), dst, []*domain.Record{
		{PluginID: readID, ScriptName: "Read1"},
		{PluginID: blurID, ScriptName: "Blur1", Inputs: map[string]string{"Source": "Read1"}},
	}, restore.FlagNone)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Count(restore.AnomalyCreateFailed))
	assert.Equal(t, 1, res.Count(restore.AnomalyUnresolvedInput))
	assert.False(t, res.Anomalies[0].Kind.IsWarning())
	assert.Len(t, res.Created, 1)
}

func TestRestore_ExternalNodes(t *testing.T) {
	records := []*domain.Record{
		{PluginID: blurID, ScriptName: "Blur1", Inputs: map[string]string{"Source": "Plate"}},
	}

	t.Run("Disallowed", func(t *testing.T) {
		f := newFactory(t)
		dst := collection.New()
		mustCreate(t, f, dst, readID, "Plate")

		res, err := restore.New(f).CreateNodesFromRecords(context.Background(), dst, records, restore.FlagNone)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count(restore.AnomalyUnresolvedInput))
		assert.Nil(t, dst.NodeByName("Blur1").Input(0))
	})

	t.Run("Allowed", func(t *testing.T) {
		f := newFactory(t)
		dst := collection.New()
		plate := mustCreate(t, f, dst, readID, "Plate")

		res, err := restore.New(f).CreateNodesFromRecords(context.Background(), dst, records, restore.FlagConnectToExternalNodes)
		require.NoError(t, err)
		assert.True(t, res.OK())
		assert.Same(t, plate, dst.NodeByName("Blur1").Input(0))
	})
}

func TestRestore_StatusMessages(t *testing.T) {
	f := newFactory(t)
	var msgs []string
	r := restore.New(f, restore.WithStatusReporter(ports.StatusReporterFunc(func(msg string) {
		msgs = append(msgs, msg)
	})))

	_, err := r.CreateNodesFromRecords(context.Background(), collection.New(), []*domain.Record{
		{PluginID: domain.PluginIDGroup, ScriptName: "Group1", Children: []*domain.Record{
			{PluginID: blurID, ScriptName: "Blur1"},
		}},
	}, restore.FlagNone)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Creating nodes in group: top-level",
		"Creating nodes in group: Group1",
		"Restoring graph links in group: Group1",
		"Restoring graph links in group: top-level",
	}, msgs)
}

func TestRestore_NestedLinks(t *testing.T) {
	f := newFactory(t)
	dst := collection.New()
	records := []*domain.Record{
		{PluginID: readID, ScriptName: "Read1"},
		{PluginID: domain.PluginIDGroup, ScriptName: "Group1", Children: []*domain.Record{
			{PluginID: blurID, ScriptName: "Blur1"},
			{PluginID: blurID, ScriptName: "Blur2", Links: map[string]string{"size": "Blur1.size"}},
		}},
		{PluginID: blurID, ScriptName: "Blur3", Links: map[string]string{"size": "Group1.Blur2.size"}},
		{PluginID: blurID, ScriptName: "Blur4", Links: map[string]string{"size": "Gone.size"}},
	}

	res, err := restore.New(f).CreateNodesFromRecords(context.Background(), dst, records, restore.FlagNone)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count(restore.AnomalyUnresolvedLink))

	blur1 := dst.NodeByFullySpecifiedName("Group1.Blur1")
	blur2 := dst.NodeByFullySpecifiedName("Group1.Blur2")
	link, ok := blur2.Param("size").Link()
	require.True(t, ok)
	assert.Same(t, blur1, link.Node)

	link, ok = dst.NodeByName("Blur3").Param("size").Link()
	require.True(t, ok)
	assert.Same(t, blur2, link.Node)

	saved := restore.Serialize(dst)
	assert.Equal(t, "Group1.Blur2.size", saved[2].Links["size"])
}

func TestRestore_InvalidArguments(t *testing.T) {
	_, err := restore.New(newFactory(t)).CreateNodesFromRecords(context.Background(), nil, nil, restore.FlagNone)
	assert.Error(t, err)

	_, err = restore.New(nil).CreateNodesFromRecords(context.Background(), collection.New(), nil, restore.FlagNone)
	assert.Error(t, err)
}

func TestRestore_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := restore.New(newFactory(t)).CreateNodesFromRecords(ctx, collection.New(), []*domain.Record{
		{PluginID: readID, ScriptName: "Read1"},
	}, restore.FlagNone)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Empty(t, res.Created)
}

func TestSerializeDocument(t *testing.T) {
	f := newFactory(t)
	doc := restore.SerializeDocument("shot010", buildSource(t, f))
	assert.Equal(t, "shot010", doc.Name)
	assert.Equal(t, domain.DocumentVersion, doc.Version)
	assert.Len(t, doc.Nodes, 4)
	require.Len(t, doc.Nodes[3].Children, 3)
	assert.Equal(t, map[string]string{"Source": "Input1"}, doc.Nodes[3].Children[1].Inputs)
}
