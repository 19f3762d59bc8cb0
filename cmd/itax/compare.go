package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/compare"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/rgehrsitz/itax/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	var (
		baseName      string
		with          string
		format        string
		listTemplates bool
	)

	cmd := &cobra.Command{
		Use:   "compare [record-file]",
		Short: "Compare what-if deduction strategies against a record",
		Long: `Compare a record against alternatives built from strategy templates
or individual transforms.

Examples:
  itax compare record.yaml --with max_80c,max_80d
  itax compare record.yaml --with max_all,set_rent:amount=180000 --format csv
  itax compare --list-templates  # Show all available templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := newCalculator(cmd)
			if err != nil {
				return err
			}

			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates(calc.Rules())))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("record file required for comparison (use --list-templates to see available templates)")
			}
			if with == "" {
				return fmt.Errorf("--with flag is required to specify templates to compare (or use --list-templates)")
			}
			templates := transform.ParseTemplateList(with)
			if len(templates) == 0 {
				return fmt.Errorf("no valid templates specified in --with flag")
			}

			record, err := config.NewInputParser().LoadRecord(args[0])
			if err != nil {
				return err
			}

			engine := compare.NewCompareEngine(calc)
			engine.SetLogger(cliLogger(cmd))
			compSet, err := engine.Compare(cmd.Context(), record, compare.CompareOptions{
				BaseScenarioName: baseName,
				Templates:        templates,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			compSet.ConfigPath = args[0]

			var out string
			switch strings.ToLower(format) {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			case "table", "console", "":
				out = (&compare.TableFormatter{}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet)
			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", format)
			}
			if err != nil {
				return fmt.Errorf("failed to format %s: %w", format, err)
			}
			if !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseName, "base", "base", "Label for the unmodified record")
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated templates or transform specs to compare (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List all available strategy templates")
	return cmd
}
