package domain

// Capability flags describe what a node can act as inside a graph.
type Capability uint8

const (
	// CapOutputTerminal marks nodes that terminate a graph region (output, viewer, writer).
	CapOutputTerminal Capability = 1 << iota
	// CapGroupInput marks a terminal that becomes a formal input port of its group.
	CapGroupInput
	// CapGroupOutput marks the terminal that becomes the output of its group.
	CapGroupOutput
	// CapReader marks nodes that contribute a frame range.
	CapReader
)

// Has reports whether all bits of flag are set.
func (c Capability) Has(flag Capability) bool {
	return c&flag == flag
}

// Handle is a stable slot handle assigned by a collection when a node joins it.
// Handles are never reused, so a removed node's handle stays invalid forever.
type Handle uint64

// InvalidHandle is never assigned to a live member.
const InvalidHandle Handle = 0

// Output describes one consumer of a node's output and the consumer slots it feeds.
type Output struct {
	Node  Node
	Slots []int
}

// InputSpec describes one formal input port.
type InputSpec struct {
	Label    string `json:"label" yaml:"label" mapstructure:"label"`
	Mask     bool   `json:"mask,omitempty" yaml:"mask,omitempty" mapstructure:"mask"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty" mapstructure:"optional"`
}

// Node is the contract the graph consumes from the external effect layer.
// The graph references nodes, it never owns them.
type Node interface {
	ScriptName() string
	SetScriptName(name string)
	Label() string
	SetLabel(label string)
	PluginID() string
	MajorVersion() int
	Capabilities() Capability
	Active() bool

	MaxInputs() int
	Input(index int) Node
	InputLabel(index int) string
	// InputIndex returns the slot carrying label, or -1.
	InputIndex(label string) int
	IsInputMask(index int) bool
	// PreferredInput returns the slot used for automatic connections, or -1.
	PreferredInput() int
	// SwapInput connects input to slot index, replacing any previous connection.
	// A nil input disconnects the slot.
	SwapInput(input Node, index int) bool
	// DisconnectInput disconnects every slot fed by input.
	DisconnectInput(input Node) bool
	Outputs() []Output

	Params() []*Param
	Param(name string) *Param

	// Collection is the owning collection back-reference.
	Collection() Collection
	SetCollection(c Collection)
	// AsContainer is the capability query for group nodes.
	AsContainer() (Container, bool)

	// Quit requests in-flight background work to stop. When blocking is true
	// it waits for the work to finish.
	Quit(blocking bool)
	// Destroy tears the node down. It must run before the node leaves its collection.
	Destroy()
}

// FrameRanger is implemented by reader-capable nodes.
// Unbounded sides are reported with ok set to false on that side.
type FrameRanger interface {
	FrameRange() (first, last int, firstOK, lastOK bool)
}

// PortConfigurer is implemented by nodes whose formal inputs are derived from
// outside, such as the node representing a group.
type PortConfigurer interface {
	ConfigureInputs(specs []InputSpec)
}

// LinkResolver resolves a node name during link restoration.
type LinkResolver func(name string) Node

// LinkRestorer is implemented by nodes that can restore parameter links
// (expressions, bindings) from their persisted record.
type LinkRestorer interface {
	RestoreLinks(rec *Record, resolve LinkResolver) []error
}
