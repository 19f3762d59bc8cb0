package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/itax/internal/domain"
	"github.com/rgehrsitz/itax/internal/extract"
	"github.com/spf13/cobra"
)

func extractCmd() *cobra.Command {
	var (
		docType   string
		password  string
		format    string
		aggregate bool
	)

	cmd := &cobra.Command{
		Use:   "extract [pdf-file]...",
		Short: "Read figures from salary slip or Form 16 PDFs",
		Long: `Extract salary figures from one to four PDF documents.

The output is a document batch that the aggregate command accepts, or with
--aggregate the annual record itself.

Examples:
  itax extract apr.pdf may.pdf jun.pdf > slips.yaml
  itax extract form16.pdf --type form16 --password PAN1234
  itax extract apr.pdf may.pdf --aggregate --format json`,
		Args: cobra.RangeArgs(1, domain.MaxDocuments),
		RunE: func(cmd *cobra.Command, args []string) error {
			calc, err := newCalculator(cmd)
			if err != nil {
				return err
			}

			opts := extract.Options{Password: password}
			if t := strings.TrimSpace(docType); t != "" && t != "auto" {
				forced, err := domain.ParseDocumentType(t)
				if err != nil {
					return err
				}
				opts.DocumentType = forced
			}

			extractor := extract.NewExtractorWithRules(calc.Rules())
			extractor.SetLogger(cliLogger(cmd))

			batch := &domain.DocumentBatch{DocumentType: opts.DocumentType}
			for _, path := range args {
				raw, err := extractor.ExtractFile(cmd.Context(), path, opts)
				if err != nil {
					return err
				}
				batch.Documents = append(batch.Documents, *raw)
			}
			if batch.DocumentType == "" {
				batch.DocumentType = batch.Documents[0].DocumentType
			}
			for _, doc := range batch.Documents[1:] {
				if doc.DocumentType != batch.DocumentType {
					return fmt.Errorf("%s looks like a %s but %s looks like a %s; use --type to choose",
						doc.Source, doc.DocumentType, batch.Documents[0].Source, batch.DocumentType)
				}
			}

			if !aggregate {
				return writeStructured(cmd.OutOrStdout(), batch, format)
			}
			result, err := aggregateBatch(cmd, calc.Rules(), batch)
			if err != nil {
				return err
			}
			return writeStructured(cmd.OutOrStdout(), result, format)
		},
	}
	cmd.Flags().StringVar(&docType, "type", "auto", "Document type (auto, salary_slip, form16)")
	cmd.Flags().StringVar(&password, "password", "", "Password for protected PDFs")
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format (yaml, json)")
	cmd.Flags().BoolVar(&aggregate, "aggregate", false, "Aggregate the extracted documents into an annual record")
	return cmd
}
