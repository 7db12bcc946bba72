package group

import (
	"github.com/aretw0/nodegraph/pkg/domain"
)

// Inputs returns the live group-input terminals in port order.
func (g *Group) Inputs() []domain.Node {
	g.mu.Lock()
	handles := append([]domain.Handle(nil), g.inputs...)
	g.mu.Unlock()
	return g.resolveAll(handles)
}

// OutputNode returns the group-output terminal, or nil.
// A group has at most one effective output.
func (g *Group) OutputNode() domain.Node {
	g.mu.Lock()
	handles := append([]domain.Handle(nil), g.outputs...)
	g.mu.Unlock()
	nodes := g.resolveAll(handles)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// OutputNodeInput returns the node feeding the output terminal, or nil.
func (g *Group) OutputNodeInput() domain.Node {
	out := g.OutputNode()
	if out == nil {
		return nil
	}
	return out.Input(0)
}

// RealInputForInput returns the node connected to the group port that
// terminal stands for, or nil when terminal is not an input terminal.
func (g *Group) RealInputForInput(terminal domain.Node) domain.Node {
	h, ok := g.members.Handle(terminal)
	if !ok {
		return nil
	}
	g.mu.Lock()
	port := indexOf(g.inputs, h)
	g.mu.Unlock()
	if port < 0 {
		return nil
	}
	return g.node.Input(port)
}

// InputsOutputs returns every node fed directly by an input terminal.
func (g *Group) InputsOutputs() []domain.Node {
	var out []domain.Node
	for _, terminal := range g.Inputs() {
		for _, o := range terminal.Outputs() {
			out = append(out, o.Node)
		}
	}
	return out
}

func (g *Group) resolveAll(handles []domain.Handle) []domain.Node {
	nodes := make([]domain.Node, 0, len(handles))
	for _, h := range handles {
		if n, ok := g.members.Resolve(h); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

type activatable interface {
	SetActive(active bool)
}

// SetActive activates or deactivates the group and all its members.
// Per-member terminal notifications are suppressed meanwhile, so the
// derived ports survive a deactivate/activate cycle unchanged.
func (g *Group) SetActive(active bool) {
	g.mu.Lock()
	if active {
		g.activating = true
	} else {
		g.deactivating = true
	}
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.activating = false
		g.deactivating = false
		g.mu.Unlock()
	}()

	for _, n := range g.Nodes() {
		if a, ok := n.(activatable); ok {
			a.SetActive(active)
		}
	}
	if a, ok := g.node.(activatable); ok {
		a.SetActive(active)
	}
}
