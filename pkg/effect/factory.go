package effect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/aretw0/nodegraph/internal/logging"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/group"
	"github.com/aretw0/nodegraph/pkg/registry"
)

// Factory creates effect nodes from a plugin registry. It implements
// ports.NodeFactory.
type Factory struct {
	plugins *registry.Registry
	hooks   domain.GraphHooks
	logger  *slog.Logger
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithHooks sets the hooks of the nested collection of every group created.
func WithHooks(hooks domain.GraphHooks) FactoryOption {
	return func(f *Factory) {
		f.hooks = hooks
	}
}

// WithLogger sets the factory logger.
func WithLogger(logger *slog.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// NewFactory creates a factory backed by plugins.
func NewFactory(plugins *registry.Registry, opts ...FactoryOption) *Factory {
	f := &Factory{
		plugins: plugins,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Plugins returns the registry the factory creates nodes from.
func (f *Factory) Plugins() *registry.Registry {
	return f.plugins
}

// CreateNode creates a node of rec's plugin, names it inside coll and adds it.
// Unknown plugins produce a pass-through stub carrying the missing plugin id.
func (f *Factory) CreateNode(ctx context.Context, coll domain.Collection, rec *domain.Record) (domain.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if coll == nil || rec == nil {
		return nil, fmt.Errorf("create node: nil collection or record")
	}

	plugin, ok := f.plugins.Lookup(rec.PluginID)
	if !ok {
		f.logger.Warn("plugin not found, creating stub", "plugin_id", rec.PluginID, "name", rec.ScriptName)
		plugin = stubPlugin(rec)
	}
	caps, err := plugin.Caps()
	if err != nil {
		return nil, err
	}

	name, err := f.nodeName(coll, rec, plugin)
	if err != nil {
		return nil, err
	}

	params := make([]*domain.Param, 0, len(plugin.Params)+len(rec.Params))
	for _, spec := range plugin.Params {
		params = append(params, domain.NewParam(spec.Name, spec.Kind, spec.Default))
	}
	if !ok {
		params = append(params, domain.NewParam(domain.ParamStubPluginID, domain.ParamText, rec.PluginID))
	}
	params = applyRecordParams(params, rec.Params)

	node := New(plugin.ID, name,
		WithLabel(rec.Label),
		WithVersion(plugin.Version),
		WithCapabilities(caps),
		WithInputs(plugin.Inputs...),
		WithParams(params...),
	)

	if plugin.Container {
		g := group.New(node, group.WithHooks(f.hooks), group.WithLogger(f.logger))
		coll.AddNode(g)
		return g, nil
	}
	coll.AddNode(node)
	return node, nil
}

// nodeName keeps the persisted name when it is free and suffixes it otherwise.
func (f *Factory) nodeName(coll domain.Collection, rec *domain.Record, plugin registry.Plugin) (string, error) {
	if rec.ScriptName != "" {
		name, err := coll.CheckNodeName(nil, rec.ScriptName, false, false)
		if err == nil {
			return name, nil
		}
		if errors.Is(err, domain.ErrNameExists) {
			return coll.CheckNodeName(nil, rec.ScriptName, true, false)
		}
		if !errors.Is(err, domain.ErrInvalidName) {
			return "", err
		}
		f.logger.Warn("persisted name is not usable, deriving one", "name", rec.ScriptName, "err", err)
	}
	label := plugin.Label
	if label == "" {
		label = plugin.ID
	}
	return coll.InitNodeName(plugin.ID, label)
}

func applyRecordParams(params []*domain.Param, values map[string]any) []*domain.Param {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		found := false
		for _, p := range params {
			if p.Name() == name {
				p.SetValue(values[name])
				found = true
				break
			}
		}
		if !found {
			params = append(params, domain.NewParam(name, kindOf(values[name]), values[name]))
		}
	}
	return params
}

func kindOf(v any) domain.ParamKind {
	switch v.(type) {
	case bool:
		return domain.ParamBool
	case int, int64:
		return domain.ParamInt
	case float32, float64:
		return domain.ParamFloat
	}
	return domain.ParamText
}

// stubPlugin describes a pass-through node exposing every input the record
// references, so its links can still be restored.
func stubPlugin(rec *domain.Record) registry.Plugin {
	var inputs []domain.InputSpec
	for _, label := range sortedKeys(rec.Inputs) {
		inputs = append(inputs, domain.InputSpec{Label: label})
	}
	for _, label := range sortedKeys(rec.Masks) {
		inputs = append(inputs, domain.InputSpec{Label: label, Mask: true, Optional: true})
	}
	if len(inputs) == 0 {
		inputs = []domain.InputSpec{{Label: "Source"}}
	}
	return registry.Plugin{
		ID:      domain.PluginIDStub,
		Label:   "Stub",
		Version: 1,
		Inputs:  inputs,
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
