package validator

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/nodegraph/pkg/adapters/memory"
	"github.com/aretw0/nodegraph/pkg/codec"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlugins(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.NewWithBuiltins()
	require.NoError(t, r.Register(registry.Plugin{
		ID:      "fr.inria.built-in.Read",
		Label:   "Read",
		Version: 1,
		Params: []registry.ParamSpec{
			{Name: "filename", Kind: domain.ParamFile},
			{Name: "firstFrame", Kind: domain.ParamInt},
		},
	}))
	require.NoError(t, r.Register(registry.Plugin{
		ID:      "net.sf.cimg.CImgBlur",
		Label:   "BlurCImg",
		Version: 4,
		Inputs:  []domain.InputSpec{{Label: "Source"}, {Label: "Mask", Mask: true}},
		Params:  []registry.ParamSpec{{Name: "size", Kind: domain.ParamFloat}},
	}))
	return r
}

const validGraph = `name: comp
nodes:
  - {plugin_id: fr.inria.built-in.Read, name: Read1, params: {filename: a.exr, firstFrame: 1001}}
  - plugin_id: net.sf.cimg.CImgBlur
    major: 4
    name: Blur1
    inputs: {Source: Read1}
    masks: {Mask: Read1}
  - plugin_id: net.sf.nodegraph.group
    name: Group1
    children:
      - {plugin_id: net.sf.nodegraph.input, name: Input1}
      - plugin_id: net.sf.cimg.CImgBlur
        name: Blur1
        inputs: {Source: Input1}
        links: {size: Blur2.size}
      - {plugin_id: net.sf.cimg.CImgBlur, name: Blur2}
      - {plugin_id: net.sf.nodegraph.output, name: Output, inputs: {Source: Blur1}}
`

func TestValidateGraph(t *testing.T) {
	loader := memory.NewLoader(map[string]string{"comp": validGraph}, codec.FormatYAML)

	report, err := ValidateGraph(context.Background(), loader, testPlugins(t), "comp")
	require.NoError(t, err)
	assert.Empty(t, report.Issues)
	assert.NoError(t, report.Err())

	_, err = ValidateGraph(context.Background(), loader, testPlugins(t), "missing")
	assert.ErrorIs(t, err, domain.ErrGraphNotFound)
}

func TestValidateDocument_Problems(t *testing.T) {
	doc := &domain.Document{
		Name: "broken",
		Nodes: []*domain.Record{
			{PluginID: "fr.inria.built-in.Read", ScriptName: "Read1", Params: map[string]any{"firstFrame": "x", "legacy": 1}},
			{PluginID: "fr.inria.built-in.Read", ScriptName: "Read1"},
			{PluginID: "net.sf.cimg.CImgBlur", MajorVersion: 3, ScriptName: "Blur 1",
				Inputs: map[string]string{"Source": "Ghost1", "Matte": "Read1"},
				Links:  map[string]string{"size": "Read1.size", "gain": "nodot"}},
			{PluginID: "com.vendor.Grade", ScriptName: "Grade1", Children: []*domain.Record{
				{PluginID: "net.sf.cimg.CImgBlur", ScriptName: "Inner1", Inputs: map[string]string{"0": "Read1"}},
			}},
			{PluginID: "fr.inria.built-in.Read", ScriptName: "Read2", Children: []*domain.Record{
				{PluginID: "fr.inria.built-in.Read", ScriptName: "Ignored1"},
			}},
		},
	}

	report := ValidateDocument(doc, testPlugins(t))

	var got []string
	for _, i := range report.Issues {
		got = append(got, i.String())
	}
	assert.Equal(t, []string{
		`error: Read1: parameter "firstFrame": expected int, got string`,
		`warning: Read1: parameter "legacy" is not declared by fr.inria.built-in.Read and will be dropped`,
		`error: Read1: duplicate name`,
		`warning: Blur 1: name is not script friendly (Blur_1)`,
		`warning: Blur 1: saved with version 3, available version is 4`,
		`error: Blur 1: input Matte does not exist on net.sf.cimg.CImgBlur`,
		`error: Blur 1: input Source references unknown node Ghost1`,
		`error: Blur 1: parameter gain: malformed link target "nodot"`,
		`error: Blur 1: parameter size: node Read1 has no parameter size`,
		`warning: Grade1: plugin com.vendor.Grade not found; a pass-through node will be created`,
		`error: Grade1.Inner1: input 0 references unknown node Read1`,
		`warning: Read2: children are ignored: fr.inria.built-in.Read is not a group`,
	}, got)

	assert.Equal(t, 7, report.Errors())
	err := report.Err()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "found 7 errors:"))
}

func TestValidateDocument_WithoutPlugins(t *testing.T) {
	doc := &domain.Document{Nodes: []*domain.Record{
		{PluginID: "anything", ScriptName: "A1", Inputs: map[string]string{"Source": "B1"}},
	}}
	report := ValidateDocument(doc, nil)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, SeverityError, report.Issues[0].Severity)
}
