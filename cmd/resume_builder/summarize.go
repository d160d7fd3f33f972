package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/summary"
	"github.com/spf13/cobra"
)

var (
	summarizeWrite bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <cv.json>",
	Short: "Generate a professional summary with the configured LLM",
	Long: `Generate a 60-90 word ATS-friendly professional summary for a CV.
The CV must have a name, email, phone, location, target role and at least one
experience, education entry, skill or project. Use --write to store the summary
back into the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().BoolVarP(&summarizeWrite, "write", "w", false, "Write the summary back into the CV file")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cv, err := loadCvFile(cmd, args[0])
	if err != nil {
		return err
	}

	// Check completeness before a client (and its API key) is needed
	if err := summary.Validate(cv); err != nil {
		var missing *summary.MissingFieldsError
		if verbose && errors.As(err, &missing) {
			observability.NewPrinter(cmd.ErrOrStderr()).PrintMissingFields(missing.Fields)
		}
		return err
	}

	client, err := newLLMClient(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	text, err := summary.NewGenerator(client, cfg.AITimeout(), newLogger(cfg)).Generate(cmd.Context(), cv)
	if err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSummary(text)
	} else {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
	}

	if !summarizeWrite {
		return nil
	}
	data, err := json.MarshalIndent(summary.Apply(cv, text), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal CV: %w", err)
	}
	if err := os.WriteFile(args[0], append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", args[0], err)
	}
	return nil
}
