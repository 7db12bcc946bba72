package restore

import (
	"strconv"
	"strings"

	"github.com/aretw0/nodegraph/pkg/domain"
)

// Serialize captures the membership of coll, nested groups included, as
// records that CreateNodesFromRecords can rebuild.
func Serialize(coll domain.Collection) []*domain.Record {
	nodes := coll.Nodes()
	records := make([]*domain.Record, 0, len(nodes))
	for _, n := range nodes {
		records = append(records, serializeNode(coll, n))
	}
	return records
}

// SerializeDocument wraps Serialize into a named document.
func SerializeDocument(name string, coll domain.Collection) *domain.Document {
	return &domain.Document{
		Name:    name,
		Version: domain.DocumentVersion,
		Nodes:   Serialize(coll),
	}
}

func serializeNode(coll domain.Collection, n domain.Node) *domain.Record {
	rec := &domain.Record{
		PluginID:     n.PluginID(),
		MajorVersion: n.MajorVersion(),
		ScriptName:   n.ScriptName(),
	}
	if label := n.Label(); label != rec.ScriptName {
		rec.Label = label
	}

	for i := 0; i < n.MaxInputs(); i++ {
		in := n.Input(i)
		if in == nil {
			continue
		}
		label := n.InputLabel(i)
		if label == "" {
			label = strconv.Itoa(i)
		}
		if n.IsInputMask(i) {
			if rec.Masks == nil {
				rec.Masks = make(map[string]string)
			}
			rec.Masks[label] = in.ScriptName()
		} else {
			if rec.Inputs == nil {
				rec.Inputs = make(map[string]string)
			}
			rec.Inputs[label] = in.ScriptName()
		}
	}

	for _, p := range n.Params() {
		if p.Name() == domain.ParamStubPluginID {
			rec.PluginID = p.String()
			continue
		}
		if v := p.Value(); v != nil {
			if rec.Params == nil {
				rec.Params = make(map[string]any)
			}
			rec.Params[p.Name()] = v
		}
		if link, ok := p.Link(); ok && link.Node != nil {
			if rec.Links == nil {
				rec.Links = make(map[string]string)
			}
			rec.Links[p.Name()] = relativePath(coll, link.Node) + "." + link.Param
		}
	}

	if g, ok := n.AsContainer(); ok {
		rec.Children = Serialize(g)
	}
	return rec
}

// relativePath names n relative to coll, through the groups between them.
func relativePath(coll domain.Collection, n domain.Node) string {
	parts := []string{n.ScriptName()}
	for c := n.Collection(); c != nil && c != coll; {
		parent, ok := c.(domain.Node)
		if !ok {
			break
		}
		parts = append([]string{parent.ScriptName()}, parts...)
		c = parent.Collection()
	}
	return strings.Join(parts, ".")
}
