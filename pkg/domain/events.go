package domain

import "time"

// EventType defines the category of a structural event.
type EventType string

const (
	EventNodeAdded         EventType = "node_added"
	EventNodeRemoved       EventType = "node_removed"
	EventTerminalActivated EventType = "terminal_activated"
	EventTerminalRemoved   EventType = "terminal_deactivated"
	EventEditableChanged   EventType = "editable_changed"
	EventNodesCleared      EventType = "nodes_cleared"
)

// NodeEvent describes a membership change.
type NodeEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	// Collection is the label of the collection ("top-level" or the group's script name).
	Collection string `json:"collection"`
	NodeName   string `json:"node_name,omitempty"`
	PluginID   string `json:"plugin_id,omitempty"`
	// Port is the input port index of an activated group-input terminal, -1 otherwise.
	Port int `json:"port"`
}

// GraphHooks defines callbacks for structural-change notifications.
// Hooks are always invoked with no collection lock held.
type GraphHooks struct {
	OnNodeAdded         func(*NodeEvent)
	OnNodeRemoved       func(*NodeEvent)
	OnTerminalActivated func(*NodeEvent)
	OnTerminalRemoved   func(*NodeEvent)
	OnEditableChanged   func(collection string, editable bool)
	OnNodesCleared      func(collection string)
}

// Merge returns hooks calling h first and then other.
func (h GraphHooks) Merge(other GraphHooks) GraphHooks {
	return GraphHooks{
		OnNodeAdded:         chainEvent(h.OnNodeAdded, other.OnNodeAdded),
		OnNodeRemoved:       chainEvent(h.OnNodeRemoved, other.OnNodeRemoved),
		OnTerminalActivated: chainEvent(h.OnTerminalActivated, other.OnTerminalActivated),
		OnTerminalRemoved:   chainEvent(h.OnTerminalRemoved, other.OnTerminalRemoved),
		OnEditableChanged: func(c string, e bool) {
			if h.OnEditableChanged != nil {
				h.OnEditableChanged(c, e)
			}
			if other.OnEditableChanged != nil {
				other.OnEditableChanged(c, e)
			}
		},
		OnNodesCleared: func(c string) {
			if h.OnNodesCleared != nil {
				h.OnNodesCleared(c)
			}
			if other.OnNodesCleared != nil {
				other.OnNodesCleared(c)
			}
		},
	}
}

func chainEvent(a, b func(*NodeEvent)) func(*NodeEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *NodeEvent) {
		a(e)
		b(e)
	}
}

// NewNodeEvent builds an event for node inside collection.
func NewNodeEvent(t EventType, collection string, node Node) *NodeEvent {
	e := &NodeEvent{
		Timestamp:  time.Now(),
		Type:       t,
		Collection: collection,
		Port:       -1,
	}
	if node != nil {
		e.NodeName = node.ScriptName()
		e.PluginID = node.PluginID()
	}
	return e
}
