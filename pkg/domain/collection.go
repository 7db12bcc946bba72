package domain

// Collection is the ordered membership record of a graph level.
// It is implemented by the top-level graph and by every group.
type Collection interface {
	// AddNode appends node to the membership and returns its handle.
	// It performs no uniqueness check: names are resolved before construction.
	AddNode(node Node) Handle
	// RemoveNode removes the first matching entry. Absent or nil nodes are ignored.
	RemoveNode(node Node)
	// Nodes returns a point-in-time copy of the membership.
	Nodes() []Node
	NodeByName(name string) Node
	NodeByFullySpecifiedName(path string) Node

	// CheckNodeName resolves a unique script name for node (which may be nil).
	CheckNodeName(node Node, baseName string, appendDigit, errorIfExists bool) (string, error)
	// InitNodeName derives a unique script name for a new node of a plugin.
	InitNodeName(pluginID, pluginLabel string) (string, error)

	// Handle returns the live handle of a member.
	Handle(node Node) (Handle, bool)
	// Resolve returns the live member behind a handle.
	Resolve(h Handle) (Node, bool)
}

// Container is a node that is also a collection: a group.
type Container interface {
	Node
	Collection
}
