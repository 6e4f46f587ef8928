package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/gridlens/gridlens/pkg/reconcile"
	"github.com/gridlens/gridlens/pkg/result"
)

func compareCmd() *cobra.Command {
	var families string

	cmd := &cobra.Command{
		Use:   "compare <result-a> <result-b>",
		Short: "Reconcile two frameworks' results into comparison tables",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := result.Load(args[0])
			if err != nil {
				return err
			}
			b, err := result.Load(args[1])
			if err != nil {
				return err
			}

			selected, err := parseFamilies(families)
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				out := make(map[string][]reconcile.Row, len(selected)+1)
				for _, f := range selected {
					out[string(f)] = reconcile.Compare(f, a, b)
				}
				out["systemSummary"] = reconcile.SystemSummary(a, b)
				return outputJSON(out)
			}

			printCompareHeader(a, b)
			for _, f := range selected {
				pterm.DefaultSection.Println(string(f))
				outputRowTable(reconcile.Compare(f, a, b))
			}
			pterm.DefaultSection.Println("system summary")
			outputRowTable(reconcile.SystemSummary(a, b))
			return nil
		},
	}

	cmd.Flags().StringVar(&families, "family", "all", "Metric families to compare (comma-separated, or all)")

	return cmd
}

// parseFamilies resolves the --family flag into metric families.
func parseFamilies(flag string) ([]reconcile.Family, error) {
	if flag == "" || flag == "all" {
		return reconcile.Families(), nil
	}
	var out []reconcile.Family
	for _, name := range strings.Split(flag, ",") {
		name = strings.TrimSpace(name)
		if !reconcile.ValidFamily(name) {
			return nil, fmt.Errorf("unknown metric family %q", name)
		}
		out = append(out, reconcile.Family(name))
	}
	return out, nil
}

func printCompareHeader(a, b *result.Payload) {
	pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgDarkGray)).
		WithTextStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).
		Println("FRAMEWORK COMPARISON")

	fmt.Println()

	panel := pterm.DefaultBox.WithTitle("Inputs").WithTitleTopCenter()
	panel.Println(fmt.Sprintf(
		"Slot A: %s (%s)\nSlot B: %s (%s)",
		frameworkLabel(a), a.Status,
		frameworkLabel(b), b.Status,
	))
	fmt.Println()
}

func frameworkLabel(p *result.Payload) string {
	if p == nil || p.FrameworkType == "" {
		return "unknown"
	}
	return string(p.FrameworkType)
}

func outputRowTable(rows []reconcile.Row) {
	if len(rows) == 0 {
		fmt.Println("No entities found")
		return
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.Append([]string{"ID", "Framework A", "Framework B", "Delta"})
	for _, row := range rows {
		table.Append([]string{
			row.ID,
			fmt.Sprintf("%.2f", row.ValueA),
			fmt.Sprintf("%.2f", row.ValueB),
			fmt.Sprintf("%+.2f", row.ValueB-row.ValueA),
		})
	}
	table.Render()
}
