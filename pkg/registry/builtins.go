package registry

import "github.com/aretw0/nodegraph/pkg/domain"

// Builtins are the plugins every graph understands.
var Builtins = []Plugin{
	{
		ID:        domain.PluginIDGroup,
		Label:     "Group",
		Version:   1,
		Container: true,
	},
	{
		ID:           domain.PluginIDInput,
		Label:        "Input",
		Version:      1,
		Capabilities: []string{"group_input"},
		Params: []ParamSpec{
			{Name: domain.ParamTerminalOptional, Kind: domain.ParamBool, Default: false},
			{Name: domain.ParamTerminalMask, Kind: domain.ParamBool, Default: false},
		},
	},
	{
		ID:           domain.PluginIDOutput,
		Label:        "Output",
		Version:      1,
		Capabilities: []string{"output", "group_output"},
		Inputs:       []domain.InputSpec{{Label: "Source"}},
	},
}

// NewWithBuiltins returns a registry holding the built-in plugins.
func NewWithBuiltins() *Registry {
	r := NewRegistry()
	for _, p := range Builtins {
		_ = r.Register(p)
	}
	return r
}
