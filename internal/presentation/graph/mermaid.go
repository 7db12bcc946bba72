package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/nodegraph/pkg/domain"
)

// GraphOverlay contains extra state to visualize on the graph.
// Node references are fully specified names ("Group1.Blur1").
type GraphOverlay struct {
	Changed  []string
	Selected string
}

// GenerateMermaid produces a Mermaid flowchart of coll. Groups become
// subgraphs holding their members. It applies semantic styling:
// - Reader: ((Circle))
// - Output terminal: [[Subroutine]]
// - Group input terminal: [/Parallelogram/]
// - Default: [Rectangle]
// Mask connections are dotted. Pass-through stubs are always flagged.
func GenerateMermaid(coll domain.Collection, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var stubs []string
	writeLevel(&sb, coll, "", "    ", &stubs)

	if len(stubs) > 0 || overlay != nil {
		sb.WriteString("\n    %% Styles\n")
		sb.WriteString("    classDef stub fill:#ffcdd2,stroke:#b71c1c,stroke-dasharray:4 2,color:#000;\n")
		for _, path := range stubs {
			sb.WriteString(fmt.Sprintf("    class %s stub;\n", sanitizeMermaidID(path)))
		}
	}

	if overlay != nil {
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef changed fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, path := range overlay.Changed {
			safeID := sanitizeMermaidID(path)
			if safeID != "" && !seen[safeID] {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s changed;\n", safeID))
			}
		}
		if overlay.Selected != "" {
			sb.WriteString(fmt.Sprintf("    class %s selected;\n", sanitizeMermaidID(overlay.Selected)))
		}
	}

	return sb.String()
}

func writeLevel(sb *strings.Builder, coll domain.Collection, prefix, indent string, stubs *[]string) {
	nodes := coll.Nodes()

	for _, node := range nodes {
		path := prefix + node.ScriptName()
		safeID := sanitizeMermaidID(path)

		if g, ok := node.AsContainer(); ok {
			sb.WriteString(fmt.Sprintf("%ssubgraph %s[\"%s\"]\n", indent, safeID, escapeLabel(node.Label())))
			writeLevel(sb, g, path+".", indent+"    ", stubs)
			sb.WriteString(indent + "end\n")
			continue
		}

		opener, closer := "[", "]"
		caps := node.Capabilities()
		switch {
		case caps.Has(domain.CapReader):
			opener, closer = "((", "))"
		case caps.Has(domain.CapOutputTerminal):
			opener, closer = "[[", "]]"
		case caps.Has(domain.CapGroupInput):
			opener, closer = "[/", "/]"
		}
		if node.PluginID() == domain.PluginIDStub {
			*stubs = append(*stubs, path)
		}

		label := escapeLabel(node.Label())
		if label != node.ScriptName() {
			label = fmt.Sprintf("%s <br/> %s", label, node.ScriptName())
		}
		sb.WriteString(fmt.Sprintf("%s%s%s\"%s\"%s\n", indent, safeID, opener, label, closer))
	}

	// Edges after the nodes, so every endpoint of this level is declared.
	for _, node := range nodes {
		safeTo := sanitizeMermaidID(prefix + node.ScriptName())
		for i := 0; i < node.MaxInputs(); i++ {
			in := node.Input(i)
			if in == nil {
				continue
			}
			safeFrom := sanitizeMermaidID(prefix + in.ScriptName())
			label := escapeLabel(node.InputLabel(i))

			arrow := fmt.Sprintf("-- \"%s\" -->", label)
			if node.IsInputMask(i) {
				arrow = fmt.Sprintf("-. \"%s\" .->", label)
			}
			if label == "" {
				arrow = "-->"
			}
			sb.WriteString(fmt.Sprintf("%s%s %s %s\n", indent, safeFrom, arrow, safeTo))
		}
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
