package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/epds/internal/app"
	"github.com/abhisek/epds/internal/logging"
	"github.com/abhisek/epds/internal/scoring"
)

// runApp loads configuration, opens the store, builds the scorer, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if offline, _ := cmd.Flags().GetBool("offline"); offline {
		cfg.Scorer.Offline = true
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	scorer, err := scoring.New(cfg.Scorer, eventRepo, logger)
	if err != nil {
		return err
	}

	logger.Info("starting",
		zap.String("version", version),
		zap.String("scorer", scorer.Name()),
		zap.String("config", cfg.File),
	)

	skipSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(ctx, app.Options{
		Scorer:     scorer,
		Events:     eventRepo,
		Logger:     logger,
		SubjectID:  cfg.Scorer.SubjectID,
		Budget:     cfg.Scorer.Budget(),
		SkipSplash: skipSplash,
	})
}
