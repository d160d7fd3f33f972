package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/cvdata"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// loadConfig resolves the effective configuration; --verbose forces debug logging
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	return observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
}

// loadCvFile reads and normalizes a CV document, printing an overview in verbose mode
func loadCvFile(cmd *cobra.Command, path string) (types.CvRecord, error) {
	cv, err := cvdata.LoadCvRecord(path)
	if err != nil {
		return types.CvRecord{}, err
	}
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintCvRecord(&cv)
	}
	return cv, nil
}

// newLLMClient creates the configured provider client
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	llmCfg := llm.ConfigFor(cfg.LLMProvider)
	if cfg.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierLite, cfg.Model)
	}

	apiKey := cfg.GeminiAPIKey
	if llmCfg.Provider == llm.ProviderAnthropic {
		apiKey = cfg.AnthropicAPIKey
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %s", llmCfg.Provider)
	}
	return llm.NewClient(ctx, llmCfg, apiKey)
}

// newSharer creates the configured share backend
func newSharer(ctx context.Context, cfg *config.Config, outputDir string) (export.Sharer, error) {
	if cfg.ShareBackend == "minio" {
		return export.NewMinioSharer(ctx, export.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			Region:    cfg.MinioRegion,
			UseSSL:    cfg.MinioUseSSL,
			Expiry:    cfg.ShareExpiry(),
		})
	}
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	return export.NewFileSharer(outputDir), nil
}
