package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/itax/internal/aggregation"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// writeStructured writes v as YAML or JSON.
func writeStructured(w io.Writer, v any, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format: %s (valid: yaml, json)", format)
	}
}

func aggregateCmd() *cobra.Command {
	var format string
	var calculate bool

	cmd := &cobra.Command{
		Use:   "aggregate [batch-file]",
		Short: "Annualize salary slips or pass through a Form 16",
		Long: `Combine up to four salary slips into one annual record.

One slip is multiplied by 12; two, three or four slips are summed and
multiplied by 6, 4 or 3. A Form 16 is already annual and is used as-is.

Examples:
  itax aggregate slips.yaml
  itax aggregate slips.yaml --format json
  itax aggregate slips.yaml --calculate`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := config.NewInputParser().LoadBatch(args[0])
			if err != nil {
				return err
			}
			calc, err := newCalculator(cmd)
			if err != nil {
				return err
			}

			result, err := aggregateBatch(cmd, calc.Rules(), batch)
			if err != nil {
				return err
			}
			if err := writeStructured(cmd.OutOrStdout(), result, format); err != nil {
				return err
			}

			if calculate {
				report, err := calc.BuildReport(result.Record, args[0])
				if err != nil {
					return err
				}
				data, err := output.GetFormatterByName("console-lite").Format(report)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout())
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml, json)")
	cmd.Flags().BoolVar(&calculate, "calculate", false, "Also calculate tax on the annual record")
	return cmd
}

func aggregateBatch(cmd *cobra.Command, rules domain.TaxRules, batch *domain.DocumentBatch) (*domain.AggregationResult, error) {
	agg := aggregation.NewSalaryAggregatorWithRules(rules)
	agg.SetLogger(cliLogger(cmd))
	result, err := agg.AggregateWithReport(batch.Documents, batch.DocumentType)
	if err != nil {
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}
	return result, nil
}
