package group

import (
	"context"
	"fmt"

	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/ports"
)

// SetupInitialSubGraph populates an empty, editable group with one output
// terminal fed by one input terminal.
func (g *Group) SetupInitialSubGraph(ctx context.Context, factory ports.NodeFactory) error {
	if !g.members.IsEditable() {
		return nil
	}
	g.members.SetEditedByUser(true)

	output, err := factory.CreateNode(ctx, g, &domain.Record{PluginID: domain.PluginIDOutput})
	if err != nil {
		return fmt.Errorf("group %s cannot create node %s: %w", g.ScriptName(), domain.PluginIDOutput, err)
	}
	input, err := factory.CreateNode(ctx, g, &domain.Record{PluginID: domain.PluginIDInput})
	if err != nil {
		return fmt.Errorf("group %s cannot create node %s: %w", g.ScriptName(), domain.PluginIDInput, err)
	}

	if output.MaxInputs() > 0 && output.Input(0) == nil {
		output.SwapInput(input, 0)
	}
	return nil
}
