package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/breakeven"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/spf13/cobra"
)

func breakevenCmd() *cobra.Command {
	var target string
	var format string

	cmd := &cobra.Command{
		Use:   "breakeven [record-file]",
		Short: "Find the extra deductions at which the old regime pays off",
		Long: `Search for the additional old-regime deductions that make the old regime
no more expensive than the new one (regime_parity), or that bring old-regime
tax to nil (zero_tax).

Examples:
  itax breakeven record.yaml
  itax breakeven record.yaml --target zero_tax --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := newCalculator(cmd)
			if err != nil {
				return err
			}
			record, err := config.NewInputParser().LoadRecord(args[0])
			if err != nil {
				return err
			}

			solver := breakeven.NewDefaultSolver(calc)
			var results []breakeven.Result
			if strings.EqualFold(target, "all") || target == "" {
				results, err = solver.SolveAll(cmd.Context(), record)
			} else {
				var t breakeven.Target
				if t, err = breakeven.ParseTarget(target); err != nil {
					return err
				}
				var result *breakeven.Result
				if result, err = solver.Solve(cmd.Context(), breakeven.Request{Record: record, Target: t}); err == nil {
					results = []breakeven.Result{*result}
				}
			}
			if err != nil {
				return fmt.Errorf("break-even analysis failed: %w", err)
			}

			switch strings.ToLower(format) {
			case "table", "console", "":
				fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(results))
				return nil
			default:
				return writeStructured(cmd.OutOrStdout(), results, format)
			}
		},
	}
	cmd.Flags().StringVar(&target, "target", "all", "Target to solve (regime_parity, zero_tax, all)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, yaml, json)")
	return cmd
}
