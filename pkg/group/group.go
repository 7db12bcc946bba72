package group

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/aretw0/nodegraph/internal/logging"
	"github.com/aretw0/nodegraph/pkg/collection"
	"github.com/aretw0/nodegraph/pkg/domain"
)

// Group is a node that is also a collection. The node half is delegated to
// an effect node; the collection half is a nested collection.Collection.
//
// The input and output terminal lists are derived from membership and are
// never persisted. They hold collection handles, so a terminal that leaves
// the group is pruned as soon as its handle stops resolving.
type Group struct {
	node    domain.Node
	members *collection.Collection
	hooks   domain.GraphHooks
	logger  *slog.Logger

	mu           sync.Mutex
	inputs       []domain.Handle
	outputs      []domain.Handle
	activating   bool
	deactivating bool
}

// Option configures a Group.
type Option func(*Group)

// WithHooks registers structural-change callbacks for the nested collection.
func WithHooks(hooks domain.GraphHooks) Option {
	return func(g *Group) {
		g.hooks = hooks
	}
}

// WithLogger sets the logger of the group and its nested collection.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Group) {
		g.logger = logger
	}
}

// New wraps node into a group with an empty nested collection.
func New(node domain.Node, opts ...Option) *Group {
	g := &Group{
		node:   node,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.members = collection.New(
		collection.WithOwner(g),
		collection.WithHooks(g.hooks),
		collection.WithLogger(g.logger),
	)
	return g
}

// Members returns the nested collection.
func (g *Group) Members() *collection.Collection { return g.members }

// Node returns the delegated effect node.
func (g *Group) Node() domain.Node { return g.node }

// --- domain.Node ---

func (g *Group) ScriptName() string                { return g.node.ScriptName() }
func (g *Group) SetScriptName(name string)         { g.node.SetScriptName(name) }
func (g *Group) Label() string                     { return g.node.Label() }
func (g *Group) SetLabel(label string)             { g.node.SetLabel(label) }
func (g *Group) PluginID() string                  { return g.node.PluginID() }
func (g *Group) MajorVersion() int                 { return g.node.MajorVersion() }
func (g *Group) Capabilities() domain.Capability   { return g.node.Capabilities() }
func (g *Group) Active() bool                      { return g.node.Active() }
func (g *Group) MaxInputs() int                    { return g.node.MaxInputs() }
func (g *Group) Input(index int) domain.Node       { return g.node.Input(index) }
func (g *Group) InputLabel(index int) string       { return g.node.InputLabel(index) }
func (g *Group) InputIndex(label string) int       { return g.node.InputIndex(label) }
func (g *Group) IsInputMask(index int) bool        { return g.node.IsInputMask(index) }
func (g *Group) PreferredInput() int               { return g.node.PreferredInput() }
func (g *Group) Params() []*domain.Param           { return g.node.Params() }
func (g *Group) Param(name string) *domain.Param   { return g.node.Param(name) }
func (g *Group) Collection() domain.Collection     { return g.node.Collection() }
func (g *Group) SetCollection(c domain.Collection) { g.node.SetCollection(c) }

func (g *Group) SwapInput(input domain.Node, index int) bool {
	if input == domain.Node(g) {
		return false
	}
	return g.node.SwapInput(input, index)
}

func (g *Group) DisconnectInput(input domain.Node) bool {
	return g.node.DisconnectInput(input)
}

// Outputs lists the consumers of the group inside its parent collection.
func (g *Group) Outputs() []domain.Output {
	return collection.Consumers(g.node.Collection(), g)
}

// AsContainer reports the group as a container.
func (g *Group) AsContainer() (domain.Container, bool) { return g, true }

func (g *Group) Quit(blocking bool) { g.node.Quit(blocking) }

// Destroy tears down any remaining members before the group node itself.
func (g *Group) Destroy() {
	if g.members.HasNodes() {
		g.members.ClearNodes(false)
	}
	g.node.Destroy()
}

// --- domain.Collection ---

func (g *Group) AddNode(node domain.Node) domain.Handle { return g.members.AddNode(node) }
func (g *Group) RemoveNode(node domain.Node)            { g.members.RemoveNode(node) }
func (g *Group) Nodes() []domain.Node                   { return g.members.Nodes() }
func (g *Group) NodeByName(name string) domain.Node     { return g.members.NodeByName(name) }

func (g *Group) NodeByFullySpecifiedName(path string) domain.Node {
	return g.members.NodeByFullySpecifiedName(path)
}

func (g *Group) CheckNodeName(node domain.Node, baseName string, appendDigit, errorIfExists bool) (string, error) {
	return g.members.CheckNodeName(node, baseName, appendDigit, errorIfExists)
}

func (g *Group) InitNodeName(pluginID, pluginLabel string) (string, error) {
	return g.members.InitNodeName(pluginID, pluginLabel)
}

func (g *Group) Handle(node domain.Node) (domain.Handle, bool) { return g.members.Handle(node) }
func (g *Group) Resolve(h domain.Handle) (domain.Node, bool)   { return g.members.Resolve(h) }

// --- collection.Owner ---

// NodeAdded is called by the nested collection when a member joins.
func (g *Group) NodeAdded(node domain.Node) {
	g.NotifyNodeActivated(node)
}

// NodeRemoved is called by the nested collection once node's handle is gone.
// Terminal lists are pruned regardless of activation suppression.
func (g *Group) NodeRemoved(node domain.Node) {
	removedInput, removedOutput := g.prune()
	if removedInput >= 0 {
		g.fireTerminal(domain.EventTerminalRemoved, node, removedInput)
	}
	if removedOutput {
		g.fireTerminal(domain.EventTerminalRemoved, node, -1)
	}
}

// NodesCleared resets the derived terminal lists.
func (g *Group) NodesCleared() {
	g.mu.Lock()
	g.inputs = nil
	g.outputs = nil
	g.mu.Unlock()
	g.reconfigure(nil)
}

// prune drops every terminal handle that no longer resolves and returns the
// port index of the first dropped input (or -1) and whether an output went.
func (g *Group) prune() (int, bool) {
	g.mu.Lock()
	removed := -1
	kept := g.inputs[:0]
	for i, h := range g.inputs {
		if _, ok := g.members.Resolve(h); ok {
			kept = append(kept, h)
			continue
		}
		if removed < 0 {
			removed = i
		}
	}
	g.inputs = kept

	outputRemoved := false
	outs := g.outputs[:0]
	for _, h := range g.outputs {
		if _, ok := g.members.Resolve(h); ok {
			outs = append(outs, h)
		} else {
			outputRemoved = true
		}
	}
	g.outputs = outs
	g.mu.Unlock()

	if removed >= 0 {
		g.reconfigure(g.connectionsWithout(removed))
	}
	return removed, outputRemoved
}

// connectionsWithout snapshots the node's connections, dropping port index.
func (g *Group) connectionsWithout(index int) []domain.Node {
	var conns []domain.Node
	for i := 0; i < g.node.MaxInputs(); i++ {
		if i == index {
			continue
		}
		conns = append(conns, g.node.Input(i))
	}
	return conns
}

// NotifyNodeActivated records node as a terminal when it is one. It is a
// no-op while the group itself is being activated.
func (g *Group) NotifyNodeActivated(node domain.Node) {
	h, ok := g.members.Handle(node)
	if !ok {
		return
	}
	caps := node.Capabilities()

	g.mu.Lock()
	if g.activating {
		g.mu.Unlock()
		return
	}
	port := -1
	if caps.Has(domain.CapGroupInput) && indexOf(g.inputs, h) < 0 {
		g.inputs = append(g.inputs, h)
		port = len(g.inputs) - 1
	}
	addedOutput := false
	if caps.Has(domain.CapGroupOutput) && indexOf(g.outputs, h) < 0 {
		g.outputs = append(g.outputs, h)
		addedOutput = true
	}
	g.mu.Unlock()

	if port >= 0 {
		g.reconfigure(nil)
		g.fireTerminal(domain.EventTerminalActivated, node, port)
	}
	if addedOutput {
		g.fireTerminal(domain.EventTerminalActivated, node, -1)
	}
}

// NotifyNodeDeactivated forgets node as a terminal and disconnects the
// group input it fed. It is a no-op while the group itself is being
// deactivated.
func (g *Group) NotifyNodeDeactivated(node domain.Node) {
	h, ok := g.members.Handle(node)
	if !ok {
		// Already gone: the handle was invalidated on removal.
		g.NodeRemoved(node)
		return
	}

	g.mu.Lock()
	if g.deactivating {
		g.mu.Unlock()
		return
	}
	port := indexOf(g.inputs, h)
	if port >= 0 {
		g.inputs = append(g.inputs[:port], g.inputs[port+1:]...)
	}
	outIdx := indexOf(g.outputs, h)
	if outIdx >= 0 {
		g.outputs = append(g.outputs[:outIdx], g.outputs[outIdx+1:]...)
	}
	g.mu.Unlock()

	if port >= 0 {
		g.reconfigure(g.connectionsWithout(port))
		g.fireTerminal(domain.EventTerminalRemoved, node, port)
	}
	if outIdx >= 0 {
		g.fireTerminal(domain.EventTerminalRemoved, node, -1)
	}
}

// NotifyNodeLabelChanged re-derives port labels when node is an input terminal.
func (g *Group) NotifyNodeLabelChanged(node domain.Node) {
	if node.Capabilities().Has(domain.CapGroupInput) {
		g.reconfigure(nil)
	}
}

// NotifyInputFlagsChanged re-derives ports after a terminal's mask or
// optional flag changed.
func (g *Group) NotifyInputFlagsChanged(domain.Node) {
	g.reconfigure(nil)
}

// reconfigure pushes the derived port specs to the delegated node. When conns
// is non-nil the node's inputs are reconnected from it in order.
func (g *Group) reconfigure(conns []domain.Node) {
	pc, ok := g.node.(domain.PortConfigurer)
	if !ok {
		return
	}
	terminals := g.Inputs()
	specs := make([]domain.InputSpec, len(terminals))
	for i, t := range terminals {
		specs[i] = portSpec(t)
	}
	pc.ConfigureInputs(specs)

	if conns == nil {
		return
	}
	for i := range specs {
		var in domain.Node
		if i < len(conns) {
			in = conns[i]
		}
		g.node.SwapInput(in, i)
	}
}

func portSpec(terminal domain.Node) domain.InputSpec {
	label := terminal.Label()
	if len(label) >= 5 && strings.EqualFold(label[:5], "input") {
		label = label[5:]
	}
	spec := domain.InputSpec{Label: label}
	if p := terminal.Param(domain.ParamTerminalMask); p != nil {
		spec.Mask = p.Bool()
	}
	if p := terminal.Param(domain.ParamTerminalOptional); p != nil {
		spec.Optional = p.Bool()
	}
	return spec
}

func (g *Group) fireTerminal(t domain.EventType, node domain.Node, port int) {
	hook := g.hooks.OnTerminalActivated
	if t == domain.EventTerminalRemoved {
		hook = g.hooks.OnTerminalRemoved
	}
	if hook == nil {
		return
	}
	e := domain.NewNodeEvent(t, g.ScriptName(), node)
	e.Port = port
	hook(e)
}

func indexOf(hs []domain.Handle, h domain.Handle) int {
	for i, x := range hs {
		if x == h {
			return i
		}
	}
	return -1
}

// RestoreLinks forwards parameter link restoration to the delegated node.
func (g *Group) RestoreLinks(rec *domain.Record, resolve domain.LinkResolver) []error {
	lr, ok := g.node.(domain.LinkRestorer)
	if !ok {
		return nil
	}
	return lr.RestoreLinks(rec, resolve)
}
