package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gridlens/gridlens/pkg/overlay"
	"github.com/gridlens/gridlens/pkg/result"
	"github.com/gridlens/gridlens/pkg/scenario"
	"github.com/gridlens/gridlens/pkg/topology"
)

func renderCmd() *cobra.Command {
	var resultPath string

	cmd := &cobra.Command{
		Use:   "render <scenario-file>",
		Short: "Render a scenario topology, optionally overlaid with a simulation result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			desc, err := scenario.LoadFile(args[0])
			if err != nil {
				return err
			}

			var payload *result.Payload
			if resultPath != "" {
				payload, err = result.Load(resultPath)
				if err != nil {
					return err
				}
			}

			base := topology.Build(scenario.NewIndex(*desc))
			graph := overlay.New(newLogger()).Apply(base, payload)

			switch outputFormat {
			case "json":
				return outputJSON(graph)
			case "table":
				return outputGraphTable(graph)
			default:
				return fmt.Errorf("unsupported output format: %s", outputFormat)
			}
		},
	}

	cmd.Flags().StringVar(&resultPath, "result", "", "Simulation result file to overlay")

	return cmd
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func outputGraphTable(g topology.Graph) error {
	nodes := tablewriter.NewWriter(os.Stdout)
	nodes.Append([]string{"Node ID", "Kind", "X", "Y", "Label"})
	for _, n := range g.Nodes {
		nodes.Append([]string{
			n.ID,
			string(n.Kind),
			fmt.Sprintf("%.0f", n.Position.X),
			fmt.Sprintf("%.0f", n.Position.Y),
			n.Label,
		})
	}
	nodes.Render()

	fmt.Println()

	edges := tablewriter.NewWriter(os.Stdout)
	edges.Append([]string{"Edge ID", "Kind", "Source", "Target", "Label"})
	for _, e := range g.Edges {
		edges.Append([]string{
			e.ID,
			string(e.Kind),
			e.SourceNodeID,
			e.TargetNodeID,
			e.Label,
		})
	}
	edges.Render()
	return nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
