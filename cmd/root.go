package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/epds/internal/config"
	"github.com/abhisek/epds/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "epds",
	Short: "Postpartum depression self-screening",
	Long: "epds is a terminal self-check based on the Edinburgh Postnatal Depression Scale.\n" +
		"It is a screening aid, not a diagnosis. In crisis, call or text 988.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EPDS_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.Flags().Bool("offline", false, "Score on this device instead of calling the scoring service")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration and applies flags on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(file)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.Path = p
	}
	return cfg, nil
}

// openStore resolves the database path using --db (highest priority),
// then store.path, then EPDS_DB, then the default XDG path.
func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := store.DefaultDBPath(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
