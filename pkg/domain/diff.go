package domain

import (
	"reflect"
	"sort"
)

// DocumentDiff represents the changes between two persisted graphs.
// Nodes are keyed by their fully specified name ("Group1.Blur2").
// It is designed to be serialized to JSON for review tooling.
type DocumentDiff struct {
	Added   []string            `json:"added,omitempty"`
	Removed []string            `json:"removed,omitempty"`
	Changed map[string]NodeDiff `json:"changed,omitempty"`
}

// NodeDiff lists what changed on one node.
type NodeDiff struct {
	// PluginID is set when the node was recreated from another plugin.
	PluginID *string `json:"plugin_id,omitempty"`

	// Inputs contains only changed, added or deleted connections.
	// For deletions, the key is present with an empty value.
	Inputs map[string]string `json:"inputs,omitempty"`

	// Params contains only changed, added or deleted values.
	// For deletions, the key is present with a nil value.
	Params map[string]any `json:"params,omitempty"`

	Links map[string]string `json:"links,omitempty"`
}

// IsEmpty checks if the node diff contains any actionable changes.
func (d NodeDiff) IsEmpty() bool {
	return d.PluginID == nil &&
		len(d.Inputs) == 0 &&
		len(d.Params) == 0 &&
		len(d.Links) == 0
}

// Diff calculates the difference between oldDoc and newDoc.
// If oldDoc is nil, every node of newDoc is reported as added (initial save).
// It returns nil when nothing changed.
func Diff(oldDoc, newDoc *Document) *DocumentDiff {
	var oldNodes, newNodes map[string]*Record
	if oldDoc != nil {
		oldNodes = flatten(oldDoc.Nodes, "")
	}
	if newDoc != nil {
		newNodes = flatten(newDoc.Nodes, "")
	}

	diff := &DocumentDiff{}
	for path, rec := range newNodes {
		old, exists := oldNodes[path]
		if !exists {
			diff.Added = append(diff.Added, path)
			continue
		}
		if nd := diffRecord(old, rec); !nd.IsEmpty() {
			if diff.Changed == nil {
				diff.Changed = make(map[string]NodeDiff)
			}
			diff.Changed[path] = nd
		}
	}
	for path := range oldNodes {
		if _, exists := newNodes[path]; !exists {
			diff.Removed = append(diff.Removed, path)
		}
	}
	sort.Strings(diff.Added)
	sort.Strings(diff.Removed)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *DocumentDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

func flatten(records []*Record, prefix string) map[string]*Record {
	out := make(map[string]*Record)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		path := rec.ScriptName
		if prefix != "" {
			path = prefix + "." + path
		}
		out[path] = rec
		for k, v := range flatten(rec.Children, path) {
			out[k] = v
		}
	}
	return out
}

func diffRecord(old, new *Record) NodeDiff {
	var d NodeDiff
	if old.PluginID != new.PluginID {
		d.PluginID = &new.PluginID
	}
	d.Inputs = diffStrings(merged(old.Inputs, old.Masks), merged(new.Inputs, new.Masks))
	d.Links = diffStrings(old.Links, new.Links)
	d.Params = diffParams(old.Params, new.Params)
	return d
}

func merged(a, b map[string]string) map[string]string {
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

func diffStrings(old, new map[string]string) map[string]string {
	delta := make(map[string]string)
	for k, v := range new {
		if old[k] != v {
			delta[k] = v
		}
	}
	for k := range old {
		if _, exists := new[k]; !exists {
			delta[k] = ""
		}
	}
	if len(delta) == 0 {
		return nil
	}
	return delta
}

func diffParams(old, new map[string]any) map[string]any {
	delta := make(map[string]any)

	// Check for Added or Modified
	for k, newVal := range new {
		oldVal, exists := old[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			delta[k] = newVal
		}
	}

	// Check for Deletions
	for k := range old {
		if _, exists := new[k]; !exists {
			delta[k] = nil
		}
	}

	// Return nil if delta is empty so omitempty can remove the key
	if len(delta) == 0 {
		return nil
	}
	return delta
}
