package collection

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aretw0/nodegraph/internal/logging"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/naming"
)

// Owner is implemented by a node that embeds a Collection, i.e. a group.
// Owner callbacks run with no collection lock held.
type Owner interface {
	domain.Collection
	ScriptName() string
	// Param is consulted so member names never shadow a group parameter.
	Param(name string) *domain.Param
	NodeAdded(node domain.Node)
	NodeRemoved(node domain.Node)
	NodesCleared()
}

// Membered is implemented by containers whose membership is a Collection.
type Membered interface {
	Members() *Collection
}

type entry struct {
	handle domain.Handle
	node   domain.Node
}

// Collection is the ordered membership record of one graph level.
// It does not own its nodes.
type Collection struct {
	mu       sync.Mutex
	entries  []entry
	handles  map[domain.Node]domain.Handle
	byHandle map[domain.Handle]domain.Node
	next     domain.Handle

	owner  Owner
	hooks  domain.GraphHooks
	logger *slog.Logger

	editable     atomic.Bool
	editedByUser atomic.Bool
}

// Option configures a Collection.
type Option func(*Collection)

// WithOwner binds the collection to the group that embeds it.
func WithOwner(owner Owner) Option {
	return func(c *Collection) {
		c.owner = owner
	}
}

// WithHooks registers structural-change callbacks.
func WithHooks(hooks domain.GraphHooks) Option {
	return func(c *Collection) {
		c.hooks = hooks
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collection) {
		c.logger = logger
	}
}

// New creates an empty, editable collection.
func New(opts ...Option) *Collection {
	c := &Collection{
		handles:  make(map[domain.Node]domain.Handle),
		byHandle: make(map[domain.Handle]domain.Node),
		logger:   logging.NewNop(),
	}
	c.editable.Store(true)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// self is the collection members see as their owner.
func (c *Collection) self() domain.Collection {
	if c.owner != nil {
		return c.owner
	}
	return c
}

// levelName is the label used in events and status messages.
func (c *Collection) levelName() string {
	if c.owner != nil {
		return c.owner.ScriptName()
	}
	return domain.TopLevelLabel
}

// Hooks returns the structural hooks, so nested groups can inherit them.
func (c *Collection) Hooks() domain.GraphHooks {
	return c.hooks
}

// Logger returns the collection logger.
func (c *Collection) Logger() *slog.Logger {
	return c.logger
}

// AddNode appends node and sets its owning-collection back-reference.
// Adding a node that is already a member returns its existing handle.
func (c *Collection) AddNode(node domain.Node) domain.Handle {
	if node == nil {
		return domain.InvalidHandle
	}

	c.mu.Lock()
	if h, ok := c.handles[node]; ok {
		c.mu.Unlock()
		return h
	}
	c.next++
	h := c.next
	c.entries = append(c.entries, entry{handle: h, node: node})
	c.handles[node] = h
	c.byHandle[h] = node
	c.mu.Unlock()

	node.SetCollection(c.self())
	c.logger.Debug("node added", "collection", c.levelName(), "node", node.ScriptName())

	if c.hooks.OnNodeAdded != nil {
		c.hooks.OnNodeAdded(domain.NewNodeEvent(domain.EventNodeAdded, c.levelName(), node))
	}
	if c.owner != nil {
		c.owner.NodeAdded(node)
	}
	return h
}

// RemoveNode removes the first matching entry, invalidates its handle and
// clears the node's owning-collection back-reference.
func (c *Collection) RemoveNode(node domain.Node) {
	if node == nil {
		return
	}

	c.mu.Lock()
	found := false
	for i, e := range c.entries {
		if e.node == node {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			delete(c.handles, node)
			delete(c.byHandle, e.handle)
			found = true
			break
		}
	}
	c.mu.Unlock()

	if !found {
		return
	}
	node.SetCollection(nil)
	c.logger.Debug("node removed", "collection", c.levelName(), "node", node.ScriptName())

	if c.owner != nil {
		c.owner.NodeRemoved(node)
	}
	if c.hooks.OnNodeRemoved != nil {
		c.hooks.OnNodeRemoved(domain.NewNodeEvent(domain.EventNodeRemoved, c.levelName(), node))
	}
}

// Nodes returns a point-in-time copy of the membership.
func (c *Collection) Nodes() []domain.Node {
	c.mu.Lock()
	defer c.mu.Unlock()

	nodes := make([]domain.Node, len(c.entries))
	for i, e := range c.entries {
		nodes[i] = e.node
	}
	return nodes
}

// Handle returns the live handle of node.
func (c *Collection) Handle(node domain.Node) (domain.Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.handles[node]
	return h, ok
}

// Resolve returns the live member behind h.
func (c *Collection) Resolve(h domain.Handle) (domain.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.byHandle[h]
	return n, ok
}

// HasNodes reports whether the collection has any member.
func (c *Collection) HasNodes() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries) > 0
}

// LastNode returns the most recently added member created from pluginID.
func (c *Collection) LastNode(pluginID string) domain.Node {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.entries) - 1; i >= 0; i-- {
		if c.entries[i].node.PluginID() == pluginID {
			return c.entries[i].node
		}
	}
	return nil
}

// NameExists reports whether a member other than caller uses name.
func (c *Collection) NameExists(name string, caller domain.Node) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.node != caller && e.node.ScriptName() == name {
			return true
		}
	}
	return false
}

// LabelExists reports whether a member other than caller displays label.
func (c *Collection) LabelExists(label string, caller domain.Node) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.node != caller && e.node.Label() == label {
			return true
		}
	}
	return false
}

// CheckNodeName resolves a unique script name for node, which may be nil
// when the node does not exist yet. node itself is excluded from the
// collision check so it can be renamed in place.
func (c *Collection) CheckNodeName(node domain.Node, baseName string, appendDigit, errorIfExists bool) (string, error) {
	r := naming.Resolver{
		Taken: func(name string) bool {
			return c.NameExists(name, node)
		},
	}
	if c.owner != nil {
		r.Reserved = func(name string) bool {
			return c.owner.Param(name) != nil
		}
	}
	return r.Resolve(baseName, appendDigit, errorIfExists)
}

// InitNodeName derives the script name of a new node of pluginID.
// Output terminals prefer the bare name, everything else gets a numeric suffix.
func (c *Collection) InitNodeName(pluginID, pluginLabel string) (string, error) {
	base := naming.BaseFromLabel(pluginLabel)
	if pluginID == domain.PluginIDOutput {
		name, err := c.CheckNodeName(nil, base, false, false)
		if err == nil {
			return name, nil
		}
		if !isNameExists(err) {
			return "", err
		}
	}
	name, err := c.CheckNodeName(nil, base, true, false)
	if err != nil {
		return "", fmt.Errorf("failed to name %s node: %w", pluginID, err)
	}
	return name, nil
}

// SetEditable toggles whether the graph may be edited from the UI.
func (c *Collection) SetEditable(editable bool) {
	c.editable.Store(editable)
	if c.hooks.OnEditableChanged != nil {
		c.hooks.OnEditableChanged(c.levelName(), editable)
	}
}

// IsEditable reports whether the graph may be edited from the UI.
func (c *Collection) IsEditable() bool {
	return c.editable.Load()
}

// SetEditedByUser marks the graph as diverging from its persisted definition.
func (c *Collection) SetEditedByUser(edited bool) {
	c.editedByUser.Store(edited)
}

// IsEditedByUser reports whether the graph diverges from its persisted definition.
func (c *Collection) IsEditedByUser() bool {
	return c.editedByUser.Load()
}
