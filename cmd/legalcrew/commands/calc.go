// ABOUTME: CLI commands for the rent increase calculator
// ABOUTME: Percentage change, new amount and the legal limit check
package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harper/legal-crew/internal/facts"
)

var calcLimit float64

// NewCalcCmd creates the calc command and its subcommands
func NewCalcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Rent increase arithmetic",
		Long: `Rent increase arithmetic, the same operations the rent increase
specialist uses as tools.

Examples:
  legalcrew calc change 1000 1050
  legalcrew calc apply 1000 3.5
  legalcrew calc check 4.2
  legalcrew calc check 4.2 --limit 5`,
	}

	change := &cobra.Command{
		Use:   "change ORIGINAL NEW",
		Short: "Percentage change between two amounts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseNumbers(args)
			if err != nil {
				return err
			}
			a, err := buildApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			pct, err := a.Calculator.PercentageChange(nums[0], nums[1])
			if err != nil {
				return err
			}
			return printCalc(cmd, map[string]any{"percentage_change": pct}, fmt.Sprintf("%.2f%%", pct))
		},
	}

	apply := &cobra.Command{
		Use:   "apply ORIGINAL CHANGE",
		Short: "Apply a percentage change to an amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseNumbers(args)
			if err != nil {
				return err
			}
			a, err := buildApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			amount, err := a.Calculator.ApplyChange(nums[0], nums[1])
			if err != nil {
				return err
			}
			return printCalc(cmd, map[string]any{"new_amount": amount}, fmt.Sprintf("%.2f", amount))
		},
	}

	check := &cobra.Command{
		Use:   "check CHANGE",
		Short: "Check a percentage increase against the legal limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nums, err := parseNumbers(args)
			if err != nil {
				return err
			}
			a, err := buildApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			limit := facts.LegalIncrease(a.Indicators, a.Config.BaseIncrease)
			if cmd.Flags().Changed("limit") {
				limit = calcLimit
			}
			legal := a.Calculator.WithinLimit(nums[0], limit)
			text := fmt.Sprintf("%.2f%% exceeds the limit of %.2f%%", nums[0], limit)
			if legal {
				text = fmt.Sprintf("%.2f%% is within the limit of %.2f%%", nums[0], limit)
			}
			return printCalc(cmd, map[string]any{"legal": legal, "limit": limit}, text)
		},
	}
	check.Flags().Float64Var(&calcLimit, "limit", 0, "Maximum percentage (default CPI plus base increase)")

	cmd.AddCommand(change, apply, check)
	return cmd
}

func parseNumbers(args []string) ([]float64, error) {
	nums := make([]float64, len(args))
	for i, arg := range args {
		n, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", arg)
		}
		nums[i] = n
	}
	return nums, nil
}

func printCalc(cmd *cobra.Command, payload map[string]any, text string) error {
	if wantJSON() {
		return printJSON(cmd.OutOrStdout(), payload)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
