// ABOUTME: CLI command to show the economic indicators
// ABOUTME: Prints CPI, the CAO wage index and the resulting legal rent increase
package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/harper/legal-crew/internal/facts"
)

// NewIndicatorsCmd creates the indicators command
func NewIndicatorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indicators",
		Short: "Show CPI, CAO wage index and the legal rent increase",
		Long: `Show the economic indicators the rent increase specialist works with.

Values come from LEGALCREW_CPI, LEGALCREW_CAO_INDEX and
LEGALCREW_BASE_INCREASE (defaults 2.0, 3.0 and 1.0).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			snap := facts.Take(a.Indicators)
			legal := facts.LegalIncrease(snap, a.Config.BaseIncrease)

			if wantJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]float64{
					"cpi":            snap.CPI(),
					"cao_index":      snap.CAOIndex(),
					"legal_increase": legal,
				})
			}

			tw := newTable(cmd.OutOrStdout(), table.Row{"Indicator", "Value"})
			tw.AppendRow(table.Row{"CPI", fmt.Sprintf("%.2f%%", snap.CPI())})
			tw.AppendRow(table.Row{"CAO wage index", fmt.Sprintf("%.2f%%", snap.CAOIndex())})
			tw.AppendRow(table.Row{"Legal rent increase", fmt.Sprintf("%.2f%%", legal)})
			tw.Render()
			return nil
		},
	}

	return cmd
}
