package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bughound/internal/config"
	"bughound/internal/history"
	"bughound/internal/insight"
	"bughound/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var scorer *insight.Scorer
		if cfg.Insight.Enabled {
			scorer, err = insight.NewScorer(ctx, cfg.Insight.APIKey, cfg.Insight.Model)
			if err != nil {
				// run without the remote model rather than refusing to start
				logger.Warn("insight scorer unavailable", zap.Error(err))
				scorer, _ = insight.NewScorer(ctx, "", cfg.Insight.Model)
			}
		}

		var store *history.Store
		if cfg.History.Enabled {
			store, err = history.Open(cfg.History.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer store.Close()
		}

		srv := server.New(cfg, logger, scorer, store)
		logger.Info("starting bughound",
			zap.String("version", server.Version),
			zap.String("addr", cfg.Server.Addr),
			zap.Bool("insight", scorer != nil),
			zap.Bool("history", store != nil))
		return srv.Run(ctx)
	},
}
