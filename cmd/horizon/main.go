// Command horizon projects household wealth through retirement: deterministic
// month-by-month runs, Monte Carlo sweeps, scenario comparisons, and
// sustainable-spending searches.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/horizonfp/horizon/internal/calculation"
	"github.com/horizonfp/horizon/internal/compare"
	"github.com/horizonfp/horizon/internal/config"
	"github.com/horizonfp/horizon/internal/domain"
	"github.com/horizonfp/horizon/internal/output"
	"github.com/horizonfp/horizon/internal/store"
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
			fmt.Fprintf(os.Stdout, "horizon %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(os.Stdout, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

var rootCmd = &cobra.Command{
	Use:   "horizon",
	Short: "Retirement and wealth projection engine",
	Long:  "Projects household wealth month by month through retirement, with Monte Carlo simulation, scenario comparison, and sustainable-spending search",
}

// loadConfig parses the input file and applies any --set overrides, then
// re-validates so an override cannot smuggle in an invalid assumption.
func loadConfig(cmd *cobra.Command, inputFile string) (*domain.Configuration, error) {
	if !fileExists(inputFile) {
		return nil, fmt.Errorf("input file %s does not exist", inputFile)
	}

	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return nil, err
	}

	scenarioName, _ := cmd.Flags().GetString("scenario")
	overrides, _ := cmd.Flags().GetStringArray("set")
	if len(overrides) > 0 {
		if err := config.ApplyOverrides(cfg, scenarioName, overrides); err != nil {
			return nil, err
		}
		if err := parser.ValidateConfiguration(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newEngine builds a calculation engine, attaching the CLI logger when
// --debug is set.
func newEngine(cmd *cobra.Command) *calculation.Engine {
	engine := calculation.NewEngine()
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine
}

var projectCmd = &cobra.Command{
	Use:   "project [input-file]",
	Short: "Run a deterministic month-by-month projection",
	Long: `Run a deterministic month-by-month projection for one scenario.

Every month applies income, expenses, and growth; each December the engine
settles the year with RMDs, sequenced withdrawals, and the full tax bill.

Examples:
  horizon project config.yaml
  horizon project config.yaml --scenario conservative --format csv
  horizon project config.yaml --set horizon_months=240 --format json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		scenarioName, _ := cmd.Flags().GetString("scenario")
		engine := newEngine(cmd)

		ctx := context.Background()
		result, err := engine.RunProjection(ctx, cfg, scenarioName)
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		if err := output.WriteProjection(os.Stdout, result, outputFormat); err != nil {
			log.Fatal(err)
		}

		recordProjection(ctx, result)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a configuration file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inputFile := args[0]

		parser := config.NewInputParser()
		_, err := parser.LoadFromFile(inputFile)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Configuration file %s is valid\n", inputFile)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare scenarios from one configuration side by side",
	Long: `Compare scenarios from one configuration side by side.

Each named scenario is projected deterministically; the comparison reports
terminal values, depletion, lifetime taxes, and recommendations. With no
--scenarios flag every scenario in the file is compared.

Examples:
  horizon compare config.yaml
  horizon compare config.yaml --scenarios base,delay_retirement
  horizon compare config.yaml --scenarios base,roth_heavy --format csv`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		var names []string
		if scenariosStr, _ := cmd.Flags().GetString("scenarios"); scenariosStr != "" {
			for _, name := range strings.Split(scenariosStr, ",") {
				names = append(names, strings.TrimSpace(name))
			}
		}

		engine := newEngine(cmd)

		ctx := context.Background()
		comparison, err := compare.NewEngine(engine).CompareScenarios(ctx, cfg, names)
		if err != nil {
			log.Fatal(err)
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		if err := output.WriteComparison(os.Stdout, comparison, outputFormat); err != nil {
			log.Fatal(err)
		}
	},
}

// recordProjection persists a finished projection when DATABASE_URL is
// configured. Persistence failures never fail the run; the report already
// went to stdout.
func recordProjection(ctx context.Context, result *domain.ProjectionResult) {
	if !store.Enabled() {
		return
	}
	if err := store.InitDB(ctx); err != nil {
		log.Printf("WARN: skipping run persistence: %v", err)
		return
	}
	pool := store.GetPool()
	if err := store.NewRunRepo(pool).SaveProjection(ctx, result); err != nil {
		log.Printf("WARN: failed to persist run %s: %v", result.RunID, err)
		return
	}
	if err := store.NewRowRepo(pool).SaveRows(ctx, result.RunID.String(), result.Rows); err != nil {
		log.Printf("WARN: failed to persist rows for run %s: %v", result.RunID, err)
	}
}

// recordSimulation is the Monte Carlo counterpart of recordProjection.
func recordSimulation(ctx context.Context, result *domain.SimulationResult) {
	if !store.Enabled() {
		return
	}
	if err := store.InitDB(ctx); err != nil {
		log.Printf("WARN: skipping run persistence: %v", err)
		return
	}
	if err := store.NewRunRepo(store.GetPool()).SaveSimulation(ctx, result); err != nil {
		log.Printf("WARN: failed to persist run %s: %v", result.RunID, err)
	}
}

func init() {
	projectCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json, pdf)")
	projectCmd.Flags().String("scenario", "", "Scenario name (first scenario in the file if not specified)")
	projectCmd.Flags().StringArray("set", nil, "Override an assumption, key=value (repeatable)")
	projectCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	// Compare command flags
	compareCmd.Flags().String("scenarios", "", "Comma-separated scenario names (all scenarios if not specified)")
	compareCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json, pdf)")
	compareCmd.Flags().StringArray("set", nil, "Override an assumption on every scenario, key=value (repeatable)")
	compareCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// A missing .env is fine; deployed environments inject variables directly.
	if err := config.LoadEnvironment(""); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	defer store.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
