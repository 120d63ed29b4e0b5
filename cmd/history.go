package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/epds/internal/risk"
	"github.com/abhisek/epds/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past results saved on this device",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := context.Background()
		results, err := s.EventRepo().QueryResultEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		printHistory(cmd.OutOrStdout(), results)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of results to show")
}

// tierColor maps a tier's severity to a terminal color.
func tierColor(t risk.Tier) *color.Color {
	switch risk.TreatmentFor(t).Severity {
	case 0:
		return color.New(color.FgGreen)
	case 1:
		return color.New(color.FgYellow)
	case 2:
		return color.New(color.FgHiYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printHistory(w io.Writer, results []store.ResultEventRecord) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	cyan := color.New(color.FgCyan, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	cyan.Fprintf(w, "%-5s  %-19s  %-5s  %-12s  %-7s  %s\n",
		"ID", "Timestamp", "Score", "Tier", "Source", "Alert")
	fmt.Fprintln(w, strings.Repeat("─", 64))

	for _, r := range results {
		tier := risk.Tier(r.Tier)
		fmt.Fprintf(w, "%-5d  %-19s  %2d/%-2d  ",
			r.ID, r.Timestamp.Local().Format("2006-01-02 15:04:05"), r.Score, risk.MaxScore)
		tierColor(tier).Fprintf(w, "%-12s", tier.DisplayName())
		fmt.Fprintf(w, "  %-7s  ", r.Source)
		if r.Emergency {
			red.Fprint(w, "!")
		}
		fmt.Fprintln(w)
	}
}
