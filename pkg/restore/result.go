package restore

import (
	"fmt"

	"github.com/aretw0/nodegraph/pkg/domain"
)

// AnomalyKind classifies a non-fatal reconstruction problem.
type AnomalyKind string

const (
	AnomalyPluginNotFound  AnomalyKind = "plugin_not_found"
	AnomalyVersionMismatch AnomalyKind = "version_mismatch"
	AnomalyCreateFailed    AnomalyKind = "create_failed"
	AnomalyUnresolvedInput AnomalyKind = "unresolved_input"
	AnomalyUnresolvedLink  AnomalyKind = "unresolved_link"
)

// IsWarning reports whether the graph still holds a node for the record.
func (k AnomalyKind) IsWarning() bool {
	return k == AnomalyPluginNotFound || k == AnomalyVersionMismatch
}

// Anomaly is one problem met while restoring a graph.
type Anomaly struct {
	Kind AnomalyKind `json:"kind"`
	// Collection is the label of the level being restored.
	Collection string `json:"collection"`
	// Node is the persisted script name of the record concerned.
	Node     string `json:"node"`
	PluginID string `json:"plugin_id,omitempty"`
	Detail   string `json:"detail"`
	Err      error  `json:"-"`
}

func (a Anomaly) String() string {
	if a.Err != nil {
		return fmt.Sprintf("%s: %s: %v", a.Kind, a.Detail, a.Err)
	}
	return fmt.Sprintf("%s: %s", a.Kind, a.Detail)
}

// Result is the outcome of a restoration.
type Result struct {
	// Created lists the nodes created directly in the target collection, in
	// record order.
	Created []domain.Node
	// Total counts every node created, nested ones included.
	Total     int
	Anomalies []Anomaly
}

// OK reports whether the graph was restored without any anomaly.
func (r *Result) OK() bool {
	return len(r.Anomalies) == 0
}

// Count returns the number of anomalies of kind.
func (r *Result) Count(kind AnomalyKind) int {
	n := 0
	for _, a := range r.Anomalies {
		if a.Kind == kind {
			n++
		}
	}
	return n
}
