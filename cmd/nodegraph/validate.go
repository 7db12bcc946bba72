package main

import (
	"fmt"

	"github.com/aretw0/nodegraph/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <name>...",
	Short: "Check that graphs restore cleanly",
	Long: `Checks every named graph (all graphs when none is given) as stored, then
restores it and reports missing plugins, version mismatches and unresolved
inputs or links.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := openProject(cmd)
		if err != nil {
			return err
		}
		defer p.Close()

		ctx := cmd.Context()
		names := args
		if len(names) == 0 {
			if names, err = p.Graphs(ctx); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, name := range names {
			report, err := validator.ValidateGraph(ctx, p.Loader(), p.Plugins(), name)
			if err != nil {
				return err
			}
			for _, issue := range report.Issues {
				fmt.Fprintf(out, "  %s\n", issue)
			}
			if report.Errors() > 0 {
				failed++
				fmt.Fprintf(out, "%s: %d errors\n", name, report.Errors())
				continue
			}

			res, err := p.Load(ctx, name)
			if err != nil {
				return err
			}
			if res.OK() {
				fmt.Fprintf(out, "%s: %d nodes, ok\n", name, res.Total)
				continue
			}
			failed++
			fmt.Fprintf(out, "%s: %d nodes, %d anomalies\n", name, res.Total, len(res.Anomalies))
			for _, a := range res.Anomalies {
				fmt.Fprintf(out, "  [%s] %s\n", a.Collection, a)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d graphs did not restore cleanly", failed, len(names))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
