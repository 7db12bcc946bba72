package effect

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/aretw0/nodegraph/pkg/collection"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/naming"
)

// Frame range parameters read by reader nodes.
const (
	ParamFirstFrame = "firstFrame"
	ParamLastFrame  = "lastFrame"
)

// Unbounded frame range sides.
const (
	UnboundedFirst = math.MinInt
	UnboundedLast  = math.MaxInt
)

// activationNotifier is implemented by groups that track terminal activation.
type activationNotifier interface {
	NotifyNodeActivated(node domain.Node)
	NotifyNodeDeactivated(node domain.Node)
}

// Node is the in-process implementation of domain.Node. It stores its inputs
// and parameters and runs background work that can be quit.
type Node struct {
	pluginID string
	major    int
	caps     domain.Capability

	mu         sync.RWMutex
	scriptName string
	label      string
	inputs     []domain.InputSpec
	slots      []domain.Node
	coll       domain.Collection
	params     []*domain.Param

	active    atomic.Bool
	destroyed atomic.Bool

	workMu sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	onDestroy func(*Node)
}

// Option configures a Node.
type Option func(*Node)

// WithLabel sets the display label. It defaults to the script name.
func WithLabel(label string) Option {
	return func(n *Node) {
		n.label = label
	}
}

// WithVersion sets the plugin major version.
func WithVersion(major int) Option {
	return func(n *Node) {
		n.major = major
	}
}

// WithCapabilities sets the capability flags.
func WithCapabilities(caps domain.Capability) Option {
	return func(n *Node) {
		n.caps = caps
	}
}

// WithInputs sets the formal input ports.
func WithInputs(specs ...domain.InputSpec) Option {
	return func(n *Node) {
		n.inputs = append([]domain.InputSpec(nil), specs...)
	}
}

// WithParams adds parameters.
func WithParams(params ...*domain.Param) Option {
	return func(n *Node) {
		n.params = append(n.params, params...)
	}
}

// WithOnDestroy registers a callback run when the node is destroyed.
func WithOnDestroy(fn func(*Node)) Option {
	return func(n *Node) {
		n.onDestroy = fn
	}
}

// New creates an active node of pluginID.
func New(pluginID, scriptName string, opts ...Option) *Node {
	n := &Node{
		pluginID:   pluginID,
		scriptName: scriptName,
	}
	n.active.Store(true)
	for _, opt := range opts {
		opt(n)
	}
	if n.label == "" {
		n.label = scriptName
	}
	n.slots = make([]domain.Node, len(n.inputs))
	n.ctx, n.cancel = context.WithCancel(context.Background())
	return n
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%s)", n.ScriptName(), n.pluginID)
}

func (n *Node) ScriptName() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.scriptName
}

func (n *Node) SetScriptName(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scriptName = name
}

func (n *Node) Label() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.label
}

// SetLabel changes the label and lets the owning group re-derive its ports.
func (n *Node) SetLabel(label string) {
	n.mu.Lock()
	n.label = label
	coll := n.coll
	n.mu.Unlock()

	if g, ok := coll.(interface{ NotifyNodeLabelChanged(domain.Node) }); ok {
		g.NotifyNodeLabelChanged(n)
	}
}

func (n *Node) PluginID() string                { return n.pluginID }
func (n *Node) MajorVersion() int               { return n.major }
func (n *Node) Capabilities() domain.Capability { return n.caps }
func (n *Node) Active() bool                    { return n.active.Load() }
func (n *Node) Destroyed() bool                 { return n.destroyed.Load() }

// SetActive toggles activation and notifies the owning group.
func (n *Node) SetActive(active bool) {
	if n.active.Swap(active) == active {
		return
	}
	notifier, ok := n.Collection().(activationNotifier)
	if !ok {
		return
	}
	if active {
		notifier.NotifyNodeActivated(n)
	} else {
		notifier.NotifyNodeDeactivated(n)
	}
}

func (n *Node) MaxInputs() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.slots)
}

func (n *Node) Input(index int) domain.Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if index < 0 || index >= len(n.slots) {
		return nil
	}
	return n.slots[index]
}

func (n *Node) InputLabel(index int) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if index < 0 || index >= len(n.inputs) {
		return ""
	}
	return n.inputs[index].Label
}

func (n *Node) InputIndex(label string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for i, in := range n.inputs {
		if in.Label == label {
			return i
		}
	}
	return -1
}

func (n *Node) IsInputMask(index int) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if index < 0 || index >= len(n.inputs) {
		return false
	}
	return n.inputs[index].Mask
}

func (n *Node) IsInputOptional(index int) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if index < 0 || index >= len(n.inputs) {
		return false
	}
	return n.inputs[index].Optional
}

// PreferredInput returns the first free non-mask slot, otherwise the first
// non-mask slot, otherwise -1.
func (n *Node) PreferredInput() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	first := -1
	for i, in := range n.inputs {
		if in.Mask {
			continue
		}
		if n.slots[i] == nil {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

func (n *Node) SwapInput(input domain.Node, index int) bool {
	if input == domain.Node(n) {
		return false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if index < 0 || index >= len(n.slots) {
		return false
	}
	n.slots[index] = input
	return true
}

func (n *Node) DisconnectInput(input domain.Node) bool {
	if input == nil {
		return false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	found := false
	for i, in := range n.slots {
		if in == input {
			n.slots[i] = nil
			found = true
		}
	}
	return found
}

// Outputs lists the siblings consuming this node.
func (n *Node) Outputs() []domain.Output {
	return collection.Consumers(n.Collection(), n)
}

// ConfigureInputs replaces the formal ports. Connections are kept by index.
func (n *Node) ConfigureInputs(specs []domain.InputSpec) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.inputs = append([]domain.InputSpec(nil), specs...)
	slots := make([]domain.Node, len(specs))
	copy(slots, n.slots)
	n.slots = slots
}

func (n *Node) Params() []*domain.Param {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return append([]*domain.Param(nil), n.params...)
}

func (n *Node) Param(name string) *domain.Param {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, p := range n.params {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

func (n *Node) Collection() domain.Collection {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.coll
}

func (n *Node) SetCollection(c domain.Collection) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.coll = c
}

func (n *Node) AsContainer() (domain.Container, bool) { return nil, false }

// FrameRange reads the frame range parameters. Missing parameters are unbounded.
func (n *Node) FrameRange() (first, last int, firstOK, lastOK bool) {
	first, firstOK = intParam(n.Param(ParamFirstFrame))
	last, lastOK = intParam(n.Param(ParamLastFrame))
	if first == UnboundedFirst {
		firstOK = false
	}
	if last == UnboundedLast {
		lastOK = false
	}
	return first, last, firstOK, lastOK
}

func intParam(p *domain.Param) (int, bool) {
	if p == nil {
		return 0, false
	}
	switch v := p.Value().(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// RestoreLinks links every parameter listed in rec.Links to its "node.param"
// target. Targets that cannot be resolved are reported and skipped.
func (n *Node) RestoreLinks(rec *domain.Record, resolve domain.LinkResolver) []error {
	var errs []error
	for name, target := range rec.Links {
		p := n.Param(name)
		if p == nil {
			errs = append(errs, fmt.Errorf("%s: no parameter %q", n.ScriptName(), name))
			continue
		}
		paramName, nodePath := naming.SplitRightToLeft(target)
		if nodePath == "" {
			errs = append(errs, fmt.Errorf("%s.%s: malformed link target %q", n.ScriptName(), name, target))
			continue
		}
		other := resolve(nodePath)
		if other == nil {
			errs = append(errs, fmt.Errorf("%s.%s: cannot find node %q", n.ScriptName(), name, nodePath))
			continue
		}
		if other.Param(paramName) == nil {
			errs = append(errs, fmt.Errorf("%s.%s: node %s has no parameter %q", n.ScriptName(), name, other.ScriptName(), paramName))
			continue
		}
		p.SetLink(other, paramName)
	}
	return errs
}

// Go runs fn as background work. fn must return once ctx is done.
// It returns false when the node has already been destroyed.
func (n *Node) Go(fn func(ctx context.Context)) bool {
	n.workMu.Lock()
	defer n.workMu.Unlock()
	if n.destroyed.Load() {
		return false
	}
	if n.ctx.Err() != nil {
		n.ctx, n.cancel = context.WithCancel(context.Background())
	}
	ctx := n.ctx
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		fn(ctx)
	}()
	return true
}

// Quit cancels background work and, when blocking, waits for it to return.
func (n *Node) Quit(blocking bool) {
	n.workMu.Lock()
	n.cancel()
	n.workMu.Unlock()
	if blocking {
		n.wg.Wait()
	}
}

// Destroy cancels background work, disconnects every input and marks the
// node destroyed. It does not remove the node from its collection.
func (n *Node) Destroy() {
	if n.destroyed.Swap(true) {
		return
	}
	n.Quit(false)

	n.mu.Lock()
	for i := range n.slots {
		n.slots[i] = nil
	}
	n.mu.Unlock()

	if n.onDestroy != nil {
		n.onDestroy(n)
	}
}
