package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	normalizeOut string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <cv.json>",
	Short: "Normalize a CV document",
	Long: `Read any JSON document and coerce it into a well-formed CV record.
Wrong-typed fields become empty values and list entries without an id are dropped.`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeOut, "out", "o", "", "Write the normalized record to this file instead of stdout")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cv, err := loadCvFile(cmd, args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cv, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal CV: %w", err)
	}
	data = append(data, '\n')

	if normalizeOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(normalizeOut, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", normalizeOut, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Normalized CV written to %s\n", normalizeOut)
	return nil
}
