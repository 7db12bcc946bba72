package group

import "github.com/aretw0/nodegraph/pkg/domain"

func isOutputTerminal(n domain.Node) bool {
	return n.Capabilities().Has(domain.CapOutputTerminal)
}

// AutoConnect wires created relative to selected, the way a node created
// while another is selected gets connected:
//
//   - two sources (no inputs) or two output terminals cannot be chained;
//   - a selected output terminal takes created as its input;
//   - a created output terminal consumes selected;
//   - a created source feeds selected;
//   - otherwise created is spliced between selected and its consumers.
//
// Connections into a node use its preferred input. It returns false, leaving
// the graph untouched, when no connection could be made.
func AutoConnect(selected, created domain.Node) bool {
	if selected == nil || created == nil || selected == created {
		return false
	}
	if selected.MaxInputs() == 0 && created.MaxInputs() == 0 {
		return false
	}
	if isOutputTerminal(selected) && isOutputTerminal(created) {
		return false
	}

	connectAsInput := false
	switch {
	case isOutputTerminal(selected):
		connectAsInput = true
	case isOutputTerminal(created):
		connectAsInput = false
	case created.MaxInputs() == 0:
		connectAsInput = true
	}

	if connectAsInput {
		slot := selected.PreferredInput()
		if slot < 0 {
			return false
		}
		return selected.SwapInput(created, slot)
	}

	slot := created.PreferredInput()
	if slot < 0 {
		return false
	}
	if !isOutputTerminal(created) {
		for _, out := range selected.Outputs() {
			if out.Node == created {
				continue
			}
			out.Node.DisconnectInput(selected)
			for _, s := range out.Slots {
				out.Node.SwapInput(created, s)
			}
		}
	}
	return created.SwapInput(selected, slot)
}

// AutoConnect wires created relative to selected inside the group.
func (g *Group) AutoConnect(selected, created domain.Node) bool {
	return AutoConnect(selected, created)
}
