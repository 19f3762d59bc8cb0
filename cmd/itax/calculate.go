package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/config"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
	"github.com/spf13/cobra"
)

var formatExtensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"markdown":     "md",
}

func extensionFor(format string) string {
	name := output.NormalizeFormatName(format)
	if ext, ok := formatExtensions[name]; ok {
		return ext
	}
	return name
}

// loadReport reads a record file and builds its full report.
func loadReport(cmd *cobra.Command, path string) (*domain.TaxReport, error) {
	calc, err := newCalculator(cmd)
	if err != nil {
		return nil, err
	}
	record, err := config.NewInputParser().LoadRecord(path)
	if err != nil {
		return nil, err
	}
	return calc.BuildReport(*record, path)
}

func calculateCmd() *cobra.Command {
	var format string
	var save bool

	cmd := &cobra.Command{
		Use:   "calculate [record-file]",
		Short: "Calculate tax under both regimes",
		Long: `Calculate income tax under the old and new regimes and recommend one.

Examples:
  itax calculate record.yaml
  itax calculate record.yaml --format json
  itax calculate record.yaml --format html --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unknown output format: %s (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			report, err := loadReport(cmd, args[0])
			if err != nil {
				return err
			}

			data, err := f.Format(report)
			if err != nil {
				return fmt.Errorf("failed to format report: %w", err)
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}

			if save {
				name, err := output.WriteFormatted(f, report, extensionFor(format))
				if err != nil {
					return fmt.Errorf("failed to save report: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console",
		fmt.Sprintf("Output format (%s)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().BoolVar(&save, "save", false, "Also write the report to a timestamped file")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [record-file]",
		Short: "Validate a financial record file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := newCalculator(cmd)
			if err != nil {
				return err
			}
			record, err := config.NewInputParser().LoadRecord(args[0])
			if err != nil {
				return err
			}

			err = calc.ValidateRecord(*record)
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Record %s has problems:\n", args[0])
				for _, p := range verr.Problems {
					fmt.Fprintf(out, "  - %s\n", p)
				}
				return fmt.Errorf("record %s failed validation with %d problems", args[0], len(verr.Problems))
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Record %s is valid\n", args[0])
			return nil
		},
	}
}

func recommendCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "recommend [record-file]",
		Short: "Show tax saving recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := loadReport(cmd, args[0])
			if err != nil {
				return err
			}

			if strings.EqualFold(format, "json") {
				data, err := json.MarshalIndent(report.Recommendations, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if format != "" && !strings.EqualFold(format, "text") {
				return fmt.Errorf("unknown output format: %s (valid: text, json)", format)
			}

			writeRecommendations(cmd, report.Recommendations)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json)")
	return cmd
}

func writeRecommendations(cmd *cobra.Command, recs domain.RecommendationReport) {
	out := cmd.OutOrStdout()
	s := recs.Summary
	fmt.Fprintf(out, "TAX SAVING RECOMMENDATIONS (%d: %d high, %d medium, %d low)\n",
		s.Total, s.HighPriority, s.MediumPriority, s.LowPriority)
	fmt.Fprintln(out, strings.Repeat("=", 60))
	if recs.Fallback {
		fmt.Fprintln(out, "General guidance (no computed advice was available)")
	}
	for i, r := range recs.Recommendations {
		fmt.Fprintf(out, "%d. [%s] %s\n", i+1, strings.ToUpper(string(r.Priority)), r.Title)
		fmt.Fprintf(out, "   %s\n", r.Description)
		if r.PotentialSavings.IsPositive() {
			fmt.Fprintf(out, "   Potential savings: %s\n", output.FormatCurrency(r.PotentialSavings))
		}
	}
	if len(recs.Recommendations) == 0 {
		fmt.Fprintln(out, "No recommendations.")
	}
}
