package restore

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/aretw0/nodegraph/pkg/collection"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/naming"
)

func (r *Restorer) restoreInputs(b *batch, res *Result, node domain.Node, inputs map[string]string, isMask bool) {
	labels := make([]string, 0, len(inputs))
	for label := range inputs {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		r.restoreInput(b, res, node, label, inputs[label], isMask)
	}
}

// restoreInput connects the node persisted as ref to the input of node
// identified by label. Older documents identify inputs by index rather than
// label.
func (r *Restorer) restoreInput(b *batch, res *Result, node domain.Node, label, ref string, isMask bool) {
	if ref == "" {
		return
	}
	unresolved := func(format string, args ...any) {
		r.record(res, Anomaly{
			Kind:       AnomalyUnresolvedInput,
			Collection: b.level,
			Node:       node.ScriptName(),
			Detail:     fmt.Sprintf(format, args...),
		})
	}

	index := -1
	if label != "" {
		index = node.InputIndex(label)
	}
	if index == -1 {
		if i, err := strconv.Atoi(label); err == nil {
			index = i
		}
		if index == -1 {
			unresolved("could not find input named %s", label)
			return
		}
		if isMask {
			index = maskSlot(node, index)
		}
	}

	found := b.findReferenced(ref)
	if found == nil {
		unresolved("input %s references unknown node %s", label, ref)
		return
	}
	if !node.SwapInput(found, index) {
		unresolved("cannot connect %s to input %s (index %d)", ref, label, index)
	}
}

// maskSlot maps the index of a mask among the node's masks to a slot index.
// Known limitation: the scan stops at the first mask slot, so only mask
// index 0 is remapped and any other index is used as a plain slot index.
func maskSlot(node domain.Node, index int) int {
	maskIndex := 0
	for i := 0; i < node.MaxInputs(); i++ {
		if node.IsInputMask(i) {
			if maskIndex == index {
				return i
			}
			break
		}
	}
	return index
}

// nodeFor returns the node created from rec in this batch.
func (b *batch) nodeFor(rec *domain.Record) domain.Node {
	for _, c := range b.created {
		if c.rec == rec {
			return c.node
		}
	}
	return nil
}

// restoreLinksRecursive restores parameter links of records and of their
// nested records. Only the top level has a batch: inside groups created
// from scratch names are known to be unchanged, so lookups go by name.
func (r *Restorer) restoreLinksRecursive(res *Result, coll domain.Collection, records []*domain.Record, b *batch) {
	level := levelLabel(coll)

	for _, rec := range records {
		if rec == nil {
			continue
		}
		var node domain.Node
		if b != nil {
			node = b.nodeFor(rec)
		}
		if node == nil {
			node = coll.NodeByName(rec.ScriptName)
		}
		if node == nil {
			continue
		}

		if lr, ok := node.(domain.LinkRestorer); ok && len(rec.Links) > 0 {
			resolve := func(path string) domain.Node {
				return resolveLinkTarget(coll, b, path)
			}
			for _, err := range lr.RestoreLinks(rec, resolve) {
				r.record(res, Anomaly{
					Kind:       AnomalyUnresolvedLink,
					Collection: level,
					Node:       rec.ScriptName,
					Detail:     "parameter link could not be restored",
					Err:        err,
				})
			}
		}

		if g, ok := node.AsContainer(); ok && len(rec.Children) > 0 {
			r.restoreLinksRecursive(res, g, rec.Children, nil)
		}
	}
}

// resolveLinkTarget resolves a dotted node path relative to coll, mapping the
// first segment through the batch when there is one.
func resolveLinkTarget(coll domain.Collection, b *batch, path string) domain.Node {
	name, remainder := naming.SplitLeftToRight(path)
	var node domain.Node
	if b != nil {
		node = b.lookupCreated(name)
	}
	if node == nil {
		node = coll.NodeByName(name)
	}
	if node == nil || remainder == "" {
		return node
	}
	g, ok := node.AsContainer()
	if !ok {
		return nil
	}
	return collection.FindByPath(g, remainder)
}
