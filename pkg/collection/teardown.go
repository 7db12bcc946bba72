package collection

import "github.com/aretw0/nodegraph/pkg/domain"

// QuitAnyProcessing asks every node, recursively, to stop its background
// work. When blocking is true each call waits for the node to finish.
func (c *Collection) QuitAnyProcessing(blocking bool) {
	quitRecursive(c, blocking)
}

func quitRecursive(coll domain.Collection, blocking bool) {
	for _, n := range coll.Nodes() {
		n.Quit(blocking)
		if g, ok := n.AsContainer(); ok {
			quitRecursive(g, blocking)
		}
	}
}

// ClearNodes tears the whole level down. Work is first stopped on every node,
// waiting for it when blocking is true. The contents of each nested group are
// destroyed before the group node itself, then the membership is emptied.
func (c *Collection) ClearNodes(blocking bool) {
	c.QuitAnyProcessing(blocking)
	c.clearNodesInternal()
}

func (c *Collection) clearNodesInternal() {
	nodes := c.Nodes()

	for _, n := range nodes {
		if g, ok := n.AsContainer(); ok {
			clearContainer(g)
		}
	}
	for _, n := range nodes {
		n.Destroy()
	}

	c.mu.Lock()
	c.entries = nil
	c.handles = make(map[domain.Node]domain.Handle)
	c.byHandle = make(map[domain.Handle]domain.Node)
	c.mu.Unlock()

	c.logger.Debug("nodes cleared", "collection", c.levelName(), "count", len(nodes))

	if c.owner != nil {
		c.owner.NodesCleared()
	}
	if c.hooks.OnNodesCleared != nil {
		c.hooks.OnNodesCleared(c.levelName())
	}
}

func clearContainer(g domain.Container) {
	if m, ok := g.(Membered); ok {
		m.Members().clearNodesInternal()
		return
	}
	nodes := g.Nodes()
	for _, n := range nodes {
		if inner, ok := n.AsContainer(); ok {
			clearContainer(inner)
		}
	}
	for _, n := range nodes {
		n.Destroy()
		g.RemoveNode(n)
	}
}
