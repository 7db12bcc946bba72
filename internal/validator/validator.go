package validator

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/aretw0/nodegraph/pkg/naming"
	"github.com/aretw0/nodegraph/pkg/ports"
	"github.com/aretw0/nodegraph/pkg/registry"
	"github.com/aretw0/nodegraph/pkg/schema"
)

// Severity tells whether restoring would lose part of the graph.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one problem found in a persisted graph.
type Issue struct {
	Severity Severity `json:"severity"`
	// Node is the fully specified name of the record concerned.
	Node    string `json:"node"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Node, i.Message)
}

// Report lists the issues of one graph, in document order.
type Report struct {
	Graph  string  `json:"graph"`
	Issues []Issue `json:"issues"`
}

// Errors counts the issues of error severity.
func (r *Report) Errors() int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Err aggregates the errors of the report, or returns nil when there is none.
func (r *Report) Err() error {
	var msgs []string
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			msgs = append(msgs, fmt.Sprintf("%s: %s", i.Node, i.Message))
		}
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(msgs), strings.Join(msgs, "\n- "))
}

// ValidateGraph loads the graph name and checks it without restoring it.
func ValidateGraph(ctx context.Context, loader ports.GraphLoader, plugins *registry.Registry, name string) (*Report, error) {
	doc, err := loader.LoadGraph(ctx, name)
	if err != nil {
		return nil, err
	}
	report := ValidateDocument(doc, plugins)
	report.Graph = name
	return report, nil
}

// ValidateDocument checks names, references, links and parameter values of
// every level of doc. Plugin checks are skipped when plugins is nil.
func ValidateDocument(doc *domain.Document, plugins *registry.Registry) *Report {
	v := &checker{plugins: plugins, report: &Report{Graph: doc.Name}}
	v.level(doc.Nodes, "")
	return v.report
}

type checker struct {
	plugins *registry.Registry
	report  *Report
}

func (v *checker) add(sev Severity, node, format string, args ...any) {
	v.report.Issues = append(v.report.Issues, Issue{
		Severity: sev,
		Node:     node,
		Message:  fmt.Sprintf(format, args...),
	})
}

// level checks one list of sibling records.
func (v *checker) level(records []*domain.Record, prefix string) {
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		if rec == nil {
			continue
		}
		path := prefix + rec.ScriptName
		if rec.ScriptName == "" {
			path = fmt.Sprintf("%s#%d", prefix, i)
			v.add(SeverityWarning, path, "missing name; one will be derived from the plugin")
		} else {
			if seen[rec.ScriptName] {
				v.add(SeverityError, path, "duplicate name")
			}
			seen[rec.ScriptName] = true
			if friendly := naming.ScriptFriendly(rec.ScriptName); friendly != rec.ScriptName {
				v.add(SeverityWarning, path, "name is not script friendly (%s)", friendly)
			}
		}

		plugin, known := v.plugin(rec, path)
		v.connections(rec, path, records, rec.Inputs, "input", plugin, known)
		v.connections(rec, path, records, rec.Masks, "mask", plugin, known)
		v.links(rec, path, records)

		if len(rec.Children) == 0 {
			continue
		}
		if known && !plugin.Container {
			v.add(SeverityWarning, path, "children are ignored: %s is not a group", rec.PluginID)
			continue
		}
		v.level(rec.Children, path+".")
	}
}

func (v *checker) plugin(rec *domain.Record, path string) (registry.Plugin, bool) {
	if v.plugins == nil {
		return registry.Plugin{}, false
	}
	if rec.PluginID == "" {
		v.add(SeverityError, path, "missing plugin id")
		return registry.Plugin{}, false
	}
	plugin, ok := v.plugins.Lookup(rec.PluginID)
	if !ok {
		v.add(SeverityWarning, path, "plugin %s not found; a pass-through node will be created", rec.PluginID)
		return registry.Plugin{}, false
	}
	if rec.HasVersion() && plugin.Version > 0 && rec.MajorVersion != plugin.Version {
		v.add(SeverityWarning, path, "saved with version %d, available version is %d", rec.MajorVersion, plugin.Version)
	}

	s, err := plugin.Schema()
	if err != nil {
		v.add(SeverityError, path, "%v", err)
		return plugin, true
	}
	for _, pe := range schema.ParamErrors(schema.ValidateRecord(s, rec)) {
		if pe.Unknown() {
			v.add(SeverityWarning, path, "parameter %q is not declared by %s and will be dropped", pe.Param, pe.PluginID)
			continue
		}
		v.add(SeverityError, path, "parameter %q: %v", pe.Param, pe.Err)
	}
	return plugin, true
}

func (v *checker) connections(rec *domain.Record, path string, siblings []*domain.Record, refs map[string]string, what string, plugin registry.Plugin, known bool) {
	labels := make([]string, 0, len(refs))
	for label := range refs {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		ref := refs[label]
		if ref == "" {
			continue
		}
		// Group ports come from their input terminals, not from the plugin.
		if known && !plugin.Container && !hasInput(plugin, label) {
			v.add(SeverityError, path, "%s %s does not exist on %s", what, label, rec.PluginID)
		}
		if find(siblings, ref) == nil {
			v.add(SeverityError, path, "%s %s references unknown node %s", what, label, ref)
		}
	}
}

func hasInput(plugin registry.Plugin, label string) bool {
	for _, in := range plugin.Inputs {
		if in.Label == label {
			return true
		}
	}
	i, err := strconv.Atoi(label)
	return err == nil && i >= 0 && i < len(plugin.Inputs)
}

// links checks "node.param" targets. Paths are relative to the level of rec.
func (v *checker) links(rec *domain.Record, path string, siblings []*domain.Record) {
	names := make([]string, 0, len(rec.Links))
	for name := range rec.Links {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		target := rec.Links[name]
		param, nodePath := naming.SplitRightToLeft(target)
		if nodePath == "" {
			v.add(SeverityError, path, "parameter %s: malformed link target %q", name, target)
			continue
		}
		other := resolve(siblings, nodePath)
		if other == nil {
			v.add(SeverityError, path, "parameter %s: cannot find node %s", name, nodePath)
			continue
		}
		if v.plugins == nil {
			continue
		}
		if p, ok := v.plugins.Lookup(other.PluginID); ok && !hasParam(p, param) {
			v.add(SeverityError, path, "parameter %s: node %s has no parameter %s", name, nodePath, param)
		}
	}
}

func hasParam(plugin registry.Plugin, name string) bool {
	for _, spec := range plugin.Params {
		if spec.Name == name {
			return true
		}
	}
	return false
}

func find(records []*domain.Record, name string) *domain.Record {
	for _, rec := range records {
		if rec != nil && rec.ScriptName == name {
			return rec
		}
	}
	return nil
}

// resolve follows a dotted path through nested records.
func resolve(records []*domain.Record, path string) *domain.Record {
	name, remainder := naming.SplitLeftToRight(path)
	rec := find(records, name)
	if rec == nil || remainder == "" {
		return rec
	}
	return resolve(rec.Children, remainder)
}
