package main

import (
	"fmt"

	"github.com/aretw0/nodegraph/internal/presentation/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <name>",
	Short: "Export the node graph visualization",
	Long:  `Restores the named graph and outputs a Mermaid diagram (graph LR) with one subgraph per group.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		if _, err := p.Load(cmd.Context(), args[0]); err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if sel, _ := cmd.Flags().GetString("select"); sel != "" {
			overlay = &graph.GraphOverlay{Selected: sel}
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(p.Root(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("select", "", "Highlight the node at this dotted path")
}
