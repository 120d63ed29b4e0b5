package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/epds/internal/risk"
	"github.com/abhisek/epds/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize saved results and scoring attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		stats, err := s.EventRepo().Stats(context.Background())
		if err != nil {
			return fmt.Errorf("compute stats: %w", err)
		}
		printStats(cmd.OutOrStdout(), stats)
		return nil
	},
}

func printStats(w io.Writer, stats *store.Stats) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if stats.Results == 0 && stats.Submissions == 0 {
		fmt.Fprintln(w, "No history yet.")
		return
	}

	cyan.Fprintf(w, "\n=== Results ===\n\n")
	fmt.Fprintf(w, "  Completed check-ins: %d\n", stats.Results)
	if stats.Results > 0 {
		fmt.Fprintf(w, "  Average score: %.1f/%d\n", stats.AvgScore, risk.MaxScore)
		fmt.Fprintf(w, "  Emergency guidance shown: %d\n", stats.EmergencyShown)
	}
	for _, tier := range risk.AllTiers() {
		n := stats.ResultsByTier[string(tier)]
		if n == 0 {
			continue
		}
		fmt.Fprintf(w, "    ")
		tierColor(tier).Fprintf(w, "%-12s", tier.DisplayName())
		fmt.Fprintf(w, " %d\n", n)
	}

	cyan.Fprintf(w, "\n=== Scoring attempts ===\n\n")
	fmt.Fprintf(w, "  Attempts: %d\n", stats.Submissions)
	fmt.Fprintf(w, "  Succeeded: ")
	green.Fprintf(w, "%d\n", stats.Submissions-stats.FailedAttempts)
	fmt.Fprintf(w, "  Failed: ")
	red.Fprintf(w, "%d\n", stats.FailedAttempts)
	if stats.Submissions > 0 {
		fmt.Fprintf(w, "  Average latency: %.0f ms\n", stats.AvgLatencyMs)
	}

	kinds := make([]string, 0, len(stats.FailuresByKind))
	for k := range stats.FailuresByKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(w, "    %-10s %d\n", k, stats.FailuresByKind[k])
	}
	fmt.Fprintln(w)
}
