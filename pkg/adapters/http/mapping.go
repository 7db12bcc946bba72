package http

import (
	"github.com/aretw0/nodegraph/internal/validator"
	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/registry"
	"github.com/aretw0/nodegraph/pkg/restore"
)

// DescribeNode builds the API view of n, path being its fully specified name.
func DescribeNode(path string, n domain.Node) NodeInfo {
	info := NodeInfo{
		Path:     path,
		Name:     n.ScriptName(),
		Label:    n.Label(),
		PluginId: n.PluginID(),
		Version:  n.MajorVersion(),
		Active:   n.Active(),
		Inputs:   map[string]string{},
		Params:   map[string]interface{}{},
	}
	_, info.Group = n.AsContainer()

	for i := 0; i < n.MaxInputs(); i++ {
		if in := n.Input(i); in != nil {
			info.Inputs[n.InputLabel(i)] = in.ScriptName()
		}
	}
	for _, p := range n.Params() {
		info.Params[p.Name()] = p.Value()
	}
	return info
}

// CollectNodes describes every node of coll in traversal order, expanding
// groups in place. With onlyActive, inactive nodes are skipped along with
// the contents of inactive groups.
func CollectNodes(coll domain.Collection, onlyActive bool) []NodeInfo {
	infos := []NodeInfo{}
	collectNodes(coll, "", onlyActive, &infos)
	return infos
}

func collectNodes(coll domain.Collection, prefix string, onlyActive bool, out *[]NodeInfo) {
	for _, n := range coll.Nodes() {
		if onlyActive && !n.Active() {
			continue
		}
		path := prefix + n.ScriptName()
		*out = append(*out, DescribeNode(path, n))
		if g, ok := n.AsContainer(); ok {
			collectNodes(g, path+".", onlyActive, out)
		}
	}
}

// LoadResult converts the outcome of restoring graph.
func LoadResult(graph string, res *restore.Result) LoadResponse {
	resp := LoadResponse{
		Graph:     graph,
		Total:     res.Total,
		Ok:        res.OK(),
		Anomalies: make([]Anomaly, 0, len(res.Anomalies)),
	}
	for _, a := range res.Anomalies {
		out := Anomaly{
			Kind:       string(a.Kind),
			Collection: a.Collection,
			Node:       a.Node,
			Detail:     a.Detail,
		}
		if a.PluginID != "" {
			id := a.PluginID
			out.PluginId = &id
		}
		if a.Err != nil {
			msg := a.Err.Error()
			out.Error = &msg
		}
		resp.Anomalies = append(resp.Anomalies, out)
	}
	return resp
}

// DescribePlugin converts a registry entry. It fails when a parameter kind
// has no schema type.
func DescribePlugin(p registry.Plugin) (PluginInfo, error) {
	s, err := p.Schema()
	if err != nil {
		return PluginInfo{}, err
	}
	info := PluginInfo{
		Id:           p.ID,
		Label:        p.Label,
		Version:      p.Version,
		Container:    p.Container,
		Capabilities: append([]string{}, p.Capabilities...),
		Inputs:       make([]PluginInput, len(p.Inputs)),
		Params:       s,
		Defaults:     make(map[string]interface{}, len(p.Params)),
	}
	for i, in := range p.Inputs {
		info.Inputs[i] = PluginInput{Label: in.Label, Mask: in.Mask, Optional: in.Optional}
	}
	for _, spec := range p.Params {
		if spec.Default != nil {
			info.Defaults[spec.Name] = spec.Default
		}
	}
	return info, nil
}

// ValidationResult converts a validator report.
func ValidationResult(report *validator.Report) ValidationReport {
	out := ValidationReport{
		Graph:  report.Graph,
		Issues: make([]ValidationIssue, len(report.Issues)),
	}
	for i, issue := range report.Issues {
		out.Issues[i] = ValidationIssue{
			Severity: string(issue.Severity),
			Node:     issue.Node,
			Message:  issue.Message,
		}
	}
	return out
}
