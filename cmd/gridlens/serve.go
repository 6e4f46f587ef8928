package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridlens/gridlens/pkg/result"
	"github.com/gridlens/gridlens/pkg/scenario"
	"github.com/gridlens/gridlens/pkg/view"
)

func serveCmd() *cobra.Command {
	var addr, scenarioPath, resultA, resultB string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph and comparison API for a rendering collaborator",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			var desc *scenario.Description
			if scenarioPath != "" {
				var err error
				desc, err = scenario.LoadFile(scenarioPath)
				if err != nil {
					return err
				}
			}

			handler, err := view.NewHandler(desc, logger)
			if err != nil {
				return fmt.Errorf("failed to create viewer: %w", err)
			}

			for slot, path := range map[view.Slot]string{view.SlotA: resultA, view.SlotB: resultB} {
				if path == "" {
					continue
				}
				p, err := result.Load(path)
				if err != nil {
					return err
				}
				handler.SetResult(slot, p)
			}

			mux := http.NewServeMux()
			handler.RegisterRoutes(mux)

			logger.Info("gridlens viewer listening", slog.String("addr", addr))
			return http.ListenAndServe(addr, mux)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario file to serve")
	cmd.Flags().StringVar(&resultA, "result-a", "", "Result file for comparison slot A")
	cmd.Flags().StringVar(&resultB, "result-b", "", "Result file for comparison slot B")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	return cmd
}
