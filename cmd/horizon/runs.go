package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/horizonfp/horizon/internal/output"
	"github.com/horizonfp/horizon/internal/store"
)

// openStore connects to the configured database or exits. The runs commands
// are the only place persistence is mandatory.
func openStore(ctx context.Context) *store.RunRepo {
	if !store.Enabled() {
		log.Fatal("DATABASE_URL is not configured; run persistence is disabled")
	}
	if err := store.InitDB(ctx); err != nil {
		log.Fatal(err)
	}
	return store.NewRunRepo(store.GetPool())
}

func initRunsCommand() {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect persisted projection runs",
		Long:  "List and re-render projection runs persisted to the configured database.",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent persisted runs",
		Run: func(cmd *cobra.Command, args []string) {
			limit, _ := cmd.Flags().GetInt("limit")

			ctx := context.Background()
			repo := openStore(ctx)

			summaries, err := repo.RecentRuns(ctx, limit)
			if err != nil {
				log.Fatal(err)
			}
			if len(summaries) == 0 {
				fmt.Println("No stored runs yet.")
				return
			}

			fmt.Printf("%-38s %-20s %8s %9s %16s %s\n",
				"RUN ID", "SCENARIO", "MONTHS", "DEPLETED", "TERMINAL", "UPDATED")
			for _, s := range summaries {
				fmt.Printf("%-38s %-20s %8d %9s %16s %s\n",
					s.RunID, s.Scenario, s.MonthsSurvived, boolWord(s.Depleted),
					fmt.Sprintf("$%.2f", s.TerminalValue), s.UpdatedAt.Format("2006-01-02 15:04"))
			}
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [run-id]",
		Short: "Re-render a persisted run",
		Long:  "Re-render a persisted run from its stored payload, in any output format.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runID := args[0]

			ctx := context.Background()
			repo := openStore(ctx)

			result, err := repo.LoadProjection(ctx, runID)
			if err != nil {
				log.Fatal(err)
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			if err := output.WriteProjection(os.Stdout, result, outputFormat); err != nil {
				log.Fatal(err)
			}
		},
	}

	listCmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	showCmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json, pdf)")

	runsCmd.AddCommand(listCmd)
	runsCmd.AddCommand(showCmd)
	rootCmd.AddCommand(runsCmd)
}

func boolWord(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func init() {
	initRunsCommand()
}
