package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/autosave"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/identity"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/summary"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that stores, renders, summarizes and exports CVs.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	logger := newLogger(cfg)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := storage.Open(ctx, storage.Options{
		Backend:     cfg.Store,
		RedisURL:    cfg.RedisURL,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	defer func() { _ = store.Close() }()

	repo := storage.NewRepository(store)
	repo.LoadTimeout = cfg.StorageTimeout()
	repo.SaveTimeout = cfg.StorageTimeout()

	deps := server.Deps{
		Repository: repo,
		Savers:     autosave.NewRegistry(repo, cfg.AutosaveDelay(), logger),
		Logger:     logger,
	}

	if client, err := newLLMClient(ctx, cfg); err != nil {
		logger.WithError(err).Warn("AI summary disabled")
	} else {
		defer func() { _ = client.Close() }()
		deps.Summaries = summary.NewGenerator(client, cfg.AITimeout(), logger)
	}

	sharer, err := newSharer(ctx, cfg, "")
	if err != nil {
		return fmt.Errorf("failed to create %s share backend: %w", cfg.ShareBackend, err)
	}
	deps.Exporter = export.NewExporter(export.NewChromedpRenderer(cfg.ChromePath), sharer, logger)

	jwtConfig, err := config.NewJWTConfig()
	switch {
	case errors.Is(err, config.ErrJWTDisabled):
		logger.Info("JWT_SECRET not set; all requests use the guest identity")
	case err != nil:
		return fmt.Errorf("failed to create JWT config: %w", err)
	default:
		deps.Validator = identity.NewJWTVerifier(jwtConfig)
	}

	srv := server.New(server.Config{Port: cfg.Port}, deps)
	return srv.Start()
}
