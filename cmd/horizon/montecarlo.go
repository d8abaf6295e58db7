package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/horizonfp/horizon/internal/calculation"
	"github.com/horizonfp/horizon/internal/domain"
	"github.com/horizonfp/horizon/internal/output"
	"github.com/horizonfp/horizon/internal/tui"
)

var montecarloCmd = &cobra.Command{
	Use:   "montecarlo [input-file]",
	Short: "Run a Monte Carlo simulation over randomized return paths",
	Long: `Run a Monte Carlo simulation over randomized return paths.

Each path repeats the deterministic projection with monthly returns drawn
from the configured return model; the aggregate reports the success rate,
terminal-wealth percentiles, and depletion probability.

Examples:
  horizon montecarlo config.yaml
  horizon montecarlo config.yaml --scenario aggressive --tui
  horizon montecarlo config.yaml --set num_paths=50000 --format json`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd, args[0])
		if err != nil {
			log.Fatal(err)
		}

		scenarioName, _ := cmd.Flags().GetString("scenario")
		outputFormat, _ := cmd.Flags().GetString("format")
		useTUI, _ := cmd.Flags().GetBool("tui")

		engine := newEngine(cmd)
		ctx := context.Background()

		if useTUI {
			if outputFormat != "console" {
				log.Fatal("--tui renders its own summary; drop --tui for csv, json, or pdf output")
			}
			result, err := runSimulationTUI(ctx, engine, cfg, scenarioName)
			if err != nil {
				log.Fatal(err)
			}
			if result == nil {
				// The user quit before the simulation finished.
				return
			}
			recordSimulation(ctx, result)
			return
		}

		result, err := engine.RunSimulation(ctx, cfg, scenarioName, nil)
		if err != nil {
			log.Fatal(err)
		}

		if err := output.WriteSimulation(os.Stdout, result, outputFormat); err != nil {
			log.Fatal(err)
		}

		recordSimulation(ctx, result)
	},
}

// simOutcome carries the simulation goroutine's return values past the TUI
// event loop.
type simOutcome struct {
	result *domain.SimulationResult
	err    error
}

// runSimulationTUI runs the simulation behind the live progress view. The
// summary frame stays on screen after the program exits. A nil result with a
// nil error means the user quit early.
func runSimulationTUI(ctx context.Context, engine *calculation.Engine, cfg *domain.Configuration, scenarioName string) (*domain.SimulationResult, error) {
	scenario, ok := cfg.ScenarioByName(scenarioName)
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q", scenarioName)
	}
	totalPaths := scenario.Assumptions.NumPaths
	if totalPaths <= 0 {
		totalPaths = domain.DefaultNumPaths
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(tui.NewModel(scenario.Name, totalPaths))

	// Send is safe even after the program has exited, so the goroutine never
	// blocks on a dead event loop.
	outcomeCh := make(chan simOutcome, 1)
	go func() {
		result, err := engine.RunSimulation(ctx, cfg, scenario.Name, func(completed, total int) {
			p.Send(tui.ProgressMsg{Completed: completed, Total: total})
		})
		p.Send(tui.CompleteMsg{Result: result, Err: err})
		outcomeCh <- simOutcome{result: result, err: err}
	}()

	finalModel, err := p.Run()
	cancel()
	outcome := <-outcomeCh

	if err != nil {
		return nil, err
	}
	if model, ok := finalModel.(tui.Model); ok && model.Interrupted() {
		fmt.Println("Simulation cancelled.")
		return nil, nil
	}
	return outcome.result, outcome.err
}

func init() {
	montecarloCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json, pdf)")
	montecarloCmd.Flags().String("scenario", "", "Scenario name (first scenario in the file if not specified)")
	montecarloCmd.Flags().StringArray("set", nil, "Override an assumption, key=value (repeatable)")
	montecarloCmd.Flags().Bool("tui", false, "Show live progress in an interactive terminal view")
	montecarloCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	rootCmd.AddCommand(montecarloCmd)
}
