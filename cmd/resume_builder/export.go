package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/spf13/cobra"
)

var (
	exportTemplate string
	exportOutDir   string
	exportOwner    string
)

var exportCmd = &cobra.Command{
	Use:   "export <cv.json>",
	Short: "Export a CV as PDF",
	Long: `Render a CV with the chosen template, print it to PDF with headless Chrome
and hand it to the configured share backend (a local directory or MinIO).`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", "", "Template id (default from config)")
	exportCmd.Flags().StringVar(&exportOutDir, "out-dir", "", "Directory for the file share backend (default from config)")
	exportCmd.Flags().StringVar(&exportOwner, "owner", "", "Owner used to deduplicate concurrent exports (default guest)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	cv, err := loadCvFile(cmd, args[0])
	if err != nil {
		return err
	}

	id := rendering.ParseTemplateID(exportTemplate)
	if exportTemplate == "" {
		id = rendering.ParseTemplateID(cfg.Template)
	}

	sharer, err := newSharer(cmd.Context(), cfg, exportOutDir)
	if err != nil {
		return err
	}
	exporter := export.NewExporter(export.NewChromedpRenderer(cfg.ChromePath), sharer, logger)

	result, err := exporter.Export(cmd.Context(), exportOwner, cv, id)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintShareResult(&result)
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return err
}
