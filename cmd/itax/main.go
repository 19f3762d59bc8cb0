package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "itax %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "itax",
		Short: "Indian income tax calculator CLI",
		Long: `Compare income tax under the old and new regimes for a salaried
individual, annualize salary slips and explore what-if deductions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging of calculations")
	root.PersistentFlags().String("rules", "", "Path to a tax rules file overriding the FY 2024-25 tables")

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		recommendCmd(),
		aggregateCmd(),
		compareCmd(),
		breakevenCmd(),
		extractCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

// cliLogger returns the debug logger when --debug is set, nil otherwise.
func cliLogger(cmd *cobra.Command) calculation.Logger {
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		return simpleCLILogger{}
	}
	return nil
}

// newCalculator builds a calculator from --rules and --debug.
func newCalculator(cmd *cobra.Command) (*calculation.TaxCalculator, error) {
	calc := calculation.NewTaxCalculator()
	if rulesFile, _ := cmd.Flags().GetString("rules"); rulesFile != "" {
		rules, err := config.NewInputParser().LoadRules(rulesFile)
		if err != nil {
			return nil, err
		}
		calc, err = calculation.NewTaxCalculatorWithRules(*rules)
		if err != nil {
			return nil, err
		}
	}
	calc.SetLogger(cliLogger(cmd))
	return calc, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
