package collection

import (
	"errors"

	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/naming"
)

// NodeByName returns the member whose script name is exactly name.
func (c *Collection) NodeByName(name string) domain.Node {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.node.ScriptName() == name {
			return e.node
		}
	}
	return nil
}

// NodeByFullySpecifiedName resolves a dotted path such as "Group1.Blur2".
// Every segment but the last must name a group.
func (c *Collection) NodeByFullySpecifiedName(path string) domain.Node {
	return FindByPath(c, path)
}

// FindByPath resolves path against coll, descending into nested groups one
// segment at a time.
func FindByPath(coll domain.Collection, path string) domain.Node {
	if path == "" {
		return nil
	}
	name, remainder := naming.SplitLeftToRight(path)
	node := coll.NodeByName(name)
	if node == nil || remainder == "" {
		return node
	}
	g, ok := node.AsContainer()
	if !ok {
		return nil
	}
	return FindByPath(g, remainder)
}

// NodesRecursive flattens the membership depth first. Each level lists its
// own members before the contents of its groups. Inactive nodes, and the
// contents of inactive groups, are skipped when onlyActive is set.
func (c *Collection) NodesRecursive(onlyActive bool) []domain.Node {
	var out []domain.Node
	collectRecursive(c, onlyActive, &out)
	return out
}

func collectRecursive(coll domain.Collection, onlyActive bool, out *[]domain.Node) {
	// Snapshot first so no two collection locks are ever held together.
	var groups []domain.Container
	for _, n := range coll.Nodes() {
		if onlyActive && !n.Active() {
			continue
		}
		*out = append(*out, n)
		if g, ok := n.AsContainer(); ok {
			groups = append(groups, g)
		}
	}
	for _, g := range groups {
		collectRecursive(g, onlyActive, out)
	}
}

// ActiveNodesExpandGroups flattens the membership with every group
// immediately followed by its expanded contents.
func (c *Collection) ActiveNodesExpandGroups() []domain.Node {
	var out []domain.Node
	expandGroups(c, &out)
	return out
}

func expandGroups(coll domain.Collection, out *[]domain.Node) {
	for _, n := range coll.Nodes() {
		*out = append(*out, n)
		if g, ok := n.AsContainer(); ok {
			expandGroups(g, out)
		}
	}
}

// OutputTerminals returns every output-terminal member, nested groups included.
func (c *Collection) OutputTerminals() []domain.Node {
	var out []domain.Node
	for _, n := range c.ActiveNodesExpandGroups() {
		if n.Capabilities().Has(domain.CapOutputTerminal) {
			out = append(out, n)
		}
	}
	return out
}

func isNameExists(err error) bool {
	return errors.Is(err, domain.ErrNameExists)
}

// Consumers lists the members of coll that take node as an input, with the
// slots it feeds.
func Consumers(coll domain.Collection, node domain.Node) []domain.Output {
	if coll == nil || node == nil {
		return nil
	}
	var outs []domain.Output
	for _, n := range coll.Nodes() {
		if n == node {
			continue
		}
		var slots []int
		for i := 0; i < n.MaxInputs(); i++ {
			if n.Input(i) == node {
				slots = append(slots, i)
			}
		}
		if len(slots) > 0 {
			outs = append(outs, domain.Output{Node: n, Slots: slots})
		}
	}
	return outs
}
