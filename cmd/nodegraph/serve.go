package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/nodegraph"
	httpAdapter "github.com/aretw0/nodegraph/pkg/adapters/http"
	"github.com/aretw0/nodegraph/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the inspection HTTP server",
	Long:  `Exposes the project over HTTP: graph listing and loading, node inspection, Mermaid export, change events and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		initial, _ := cmd.Flags().GetString("load")

		metrics := observability.NewMetrics()
		p, err := openProject(cmd, nodegraph.WithMetrics(metrics))
		if err != nil {
			return err
		}
		defer p.Close()

		if initial != "" {
			if _, err := p.Load(cmd.Context(), initial); err != nil {
				return err
			}
		}

		srv := &http.Server{
			Addr: ":" + port,
			Handler: httpAdapter.NewHandler(p,
				httpAdapter.WithGatherer(metrics.Gatherer()),
				httpAdapter.WithVersion(nodegraph.Version),
			),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting nodegraph server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("nodegraph server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("load", "", "Graph to load on startup")
}
