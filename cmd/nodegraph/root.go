package main

import (
	"fmt"
	"os"

	"github.com/aretw0/nodegraph"
	"github.com/aretw0/nodegraph/internal/logging"
	redisAdapter "github.com/aretw0/nodegraph/pkg/adapters/redis"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nodegraph",
	Short: "nodegraph inspects and serves compositing node graphs",
	Long: `nodegraph restores node graphs (nested groups included) from a Loam
repository, a directory of documents or Redis, and reports what could not be
rebuilt.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the graph repository")
	rootCmd.PersistentFlags().StringSlice("plugins", nil, "Plugin catalogue files (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().String("redis", "", "Redis address; graphs are stored there instead of --dir")
}

// openProject builds a Project from the persistent flags.
func openProject(cmd *cobra.Command, opts ...nodegraph.Option) (*nodegraph.Project, error) {
	flags := cmd.Flags()
	dir, _ := flags.GetString("dir")
	plugins, _ := flags.GetStringSlice("plugins")
	levelName, _ := flags.GetString("log-level")
	asJSON, _ := flags.GetBool("log-json")
	redisAddr, _ := flags.GetString("redis")

	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithWriter(os.Stderr, level, asJSON)

	base := []nodegraph.Option{nodegraph.WithLogger(logger)}
	for _, path := range plugins {
		base = append(base, nodegraph.WithPluginFile(path))
	}
	if redisAddr != "" {
		store := redisAdapter.New(redisAddr, "", 0)
		base = append(base,
			nodegraph.WithStore(store),
			nodegraph.WithLocker(redisAdapter.NewLocker(store.Client(), "nodegraph:")),
		)
	}

	p, err := nodegraph.New(dir, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to open project: %w", err)
	}
	return p, nil
}
