package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/leanaid/leanaid-go/internal/adapters/filewatcher"
	"github.com/leanaid/leanaid-go/internal/adapters/llm"
	"github.com/leanaid/leanaid-go/internal/adapters/loader"
	"github.com/leanaid/leanaid-go/internal/adapters/parser"
	"github.com/leanaid/leanaid-go/internal/adapters/proofstore"
	"github.com/leanaid/leanaid-go/internal/domain/ports"
	"github.com/leanaid/leanaid-go/internal/domain/usecases"
	"github.com/leanaid/leanaid-go/internal/infrastructure/config"
	httpserver "github.com/leanaid/leanaid-go/internal/infrastructure/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the suggestion API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runServe(cmd, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, cfg *config.Config) error {
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := proofstore.NewSQLiteStore(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("opening proof store: %w", err)
	}
	defer store.Close()

	leanParser := parser.NewLeanParser()

	var inference ports.InferenceService
	if cfg.Ollama.Enabled {
		ollama := llm.NewOllamaAdapter(cfg.Ollama.BaseURL, cfg.Ollama.Model, cfg.Ollama.Timeout())
		inference = ollama
		if ollama.Available(ctx) {
			logger.Info("ollama backend reachable",
				zap.String("url", cfg.Ollama.BaseURL),
				zap.String("model", cfg.Ollama.Model))
		} else {
			logger.Warn("ollama backend unreachable, serving rule-based suggestions only",
				zap.String("url", cfg.Ollama.BaseURL))
		}
	} else {
		logger.Info("ollama disabled, serving rule-based suggestions only")
	}

	suggestUC := usecases.NewSuggestUseCase(
		leanParser, inference, cfg.Suggest.Limit, cfg.Ollama.Timeout(), logger)

	if cfg.Watch.Enabled {
		watcher, err := filewatcher.NewFSNotifyWatcher(nil, logger)
		if err != nil {
			return fmt.Errorf("creating workspace watcher: %w", err)
		}
		defer watcher.Stop()

		workspaceUC := usecases.NewWorkspaceUseCase(
			watcher, loader.NewLeanLoader(), leanParser, store, logger)
		go func() {
			if err := workspaceUC.Run(ctx, cfg.Watch.Dir); err != nil && ctx.Err() == nil {
				logger.Error("workspace watcher stopped", zap.Error(err))
			}
		}()
	}

	server := httpserver.NewServer(suggestUC, store, inference, logger, cfg.Server.Addr)
	return server.Start(ctx)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
