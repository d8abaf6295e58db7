package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/horizonfp/horizon/internal/breakeven"
)

var sustainCmd = &cobra.Command{
	Use:   "sustain [input-file]",
	Short: "Find the highest sustainable annual spending level",
	Long: `Find the highest annual spending the portfolio can carry at a target
Monte Carlo success rate.

The solver bisects over scaled copies of the configured expense streams,
running a full simulation at each candidate, until the bracket is narrower
than the tolerance.

Examples:
  horizon sustain config.yaml
  horizon sustain config.yaml --scenario base --target 0.95
  horizon sustain config.yaml --tolerance 250 --format json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		scenarioName, _ := cmd.Flags().GetString("scenario")
		target, _ := cmd.Flags().GetFloat64("target")
		tolerance, _ := cmd.Flags().GetFloat64("tolerance")
		maxIterations, _ := cmd.Flags().GetInt("max-iterations")

		solver := breakeven.NewDefaultSolver(newEngine(cmd))
		result, err := solver.Solve(context.Background(), breakeven.SustainRequest{
			Config:            cfg,
			ScenarioName:      scenarioName,
			TargetSuccessRate: decimal.NewFromFloat(target),
			Tolerance:         decimal.NewFromFloat(tolerance),
			MaxIterations:     maxIterations,
		})
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "json":
			formatter := &breakeven.JSONFormatter{Pretty: true}
			out, err := formatter.Format(result)
			if err != nil {
				log.Fatalf("Failed to format JSON: %v", err)
			}
			fmt.Println(out)

		case "table", "console", "":
			formatter := &breakeven.TableFormatter{}
			fmt.Print(formatter.Format(result))

		default:
			log.Fatalf("Unknown output format: %s (valid: table, json)", outputFormat)
		}
	},
}

func init() {
	sustainCmd.Flags().String("scenario", "", "Scenario name (first scenario in the file if not specified)")
	sustainCmd.Flags().Float64("target", 0.90, "Target Monte Carlo success rate, a unit fraction")
	sustainCmd.Flags().Float64("tolerance", 500, "Stop when the spending bracket is narrower than this many dollars")
	sustainCmd.Flags().Int("max-iterations", 40, "Maximum number of simulations to run")
	sustainCmd.Flags().StringArray("set", nil, "Override an assumption, key=value (repeatable)")
	sustainCmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	sustainCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(sustainCmd)
}
