package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/nodegraph/pkg/domain"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old> <new>",
	Short: "Compare two stored graphs",
	Long:  `Prints the nodes added, removed and changed between two graphs as JSON. Nothing is printed when they match.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		ctx := cmd.Context()
		oldDoc, err := p.Loader().LoadGraph(ctx, args[0])
		if err != nil {
			return err
		}
		newDoc, err := p.Loader().LoadGraph(ctx, args[1])
		if err != nil {
			return err
		}

		diff := domain.Diff(oldDoc, newDoc)
		if diff == nil {
			return nil
		}
		data, err := json.MarshalIndent(diff, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
